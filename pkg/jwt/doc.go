// Package jwt verifies the HS256 bearer tokens presented to the trigger
// endpoint.
//
// Tokens are signed with the platform JWT secret. Service.Verify checks the
// signature, rejects any algorithm other than HS256, and validates exp, nbf
// and optionally aud:
//
//	svc, err := jwt.NewFromString(secret, jwt.WithAudience("authenticated"))
//	if err != nil {
//		return err
//	}
//	token, err := jwt.BearerToken(r.Header.Get("Authorization"))
//	if err != nil {
//		return err
//	}
//	claims, err := svc.Verify(token)
//
// Generate is used by tooling and tests to mint tokens.
package jwt
