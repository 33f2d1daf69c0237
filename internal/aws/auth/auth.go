package auth

import "errors"

var ErrUnauthorized = errors.New("unauthorized")

// UserIdFromAuthorizer extracts the Cognito subject from an API Gateway
// authorizer context. Both the REST ("claims") and HTTP ("jwt.claims")
// authorizer shapes are accepted.
func UserIdFromAuthorizer(authorizer map[string]interface{}) (string, error) {
	source := authorizer
	if jwt, ok := authorizer["jwt"].(map[string]interface{}); ok {
		source = jwt
	}
	claims, ok := source["claims"].(map[string]interface{})
	if !ok {
		return "", ErrUnauthorized
	}
	userId, ok := claims["sub"].(string)
	if !ok || userId == "" {
		return "", ErrUnauthorized
	}
	return userId, nil
}
