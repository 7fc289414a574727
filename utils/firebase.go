package utils

import (
	"context"
	"log"

	"rentora/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var firebaseAuthClient *auth.Client

// FirebaseInit initializes the Firebase app used for admin identity verification.
// Identity management itself is delegated to Firebase Auth; the server only
// verifies ID tokens at the HTTP boundary.
func FirebaseInit() {
	ctx := context.Background()

	var opts []option.ClientOption
	if config.AppConfig.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		log.Fatalf("failed to initialize Firebase app: %v", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("failed to initialize Firebase auth client: %v", err)
	}
	firebaseAuthClient = client
}

// GetFirebaseAuthClient returns the Firebase auth client.
func GetFirebaseAuthClient() *auth.Client {
	return firebaseAuthClient
}
