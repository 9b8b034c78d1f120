// Package mocks provides shared function-field mocks of the service
// interfaces consumed by the HTTP layer.
//
// Each mock method calls its Fn field when set and otherwise returns the
// mock's default values:
//
//	jwt := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return &auth.Claims{UserID: userID}, nil
//	    },
//	}
package mocks
