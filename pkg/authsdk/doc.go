/*
Package authsdk provides a client SDK for the hdnotes authentication service
and the wire types shared between that service and its clients.

# Overview

Sign in is passwordless. The caller asks the service to mail a six digit code
to an address, then exchanges the code for a session token:

	client := authsdk.NewSDKClient("https://auth.example.com")

	_, err := client.IssueOTP(ctx, authsdk.IssueOTPRequest{
		Email:   "ada@example.com",
		Purpose: authsdk.PurposeSignin,
	})

	session, err := client.VerifyOTP(ctx, authsdk.VerifyOTPRequest{
		Email:   "ada@example.com",
		Code:    "123456",
		Purpose: authsdk.PurposeSignin,
	})

Use CheckUser first when you do not know whether to sign up or sign in.

# Sessions

A Session wraps the bearer token returned by VerifyOTP and exposes the
protected operations (profile and notes). Tokens are not refreshed; once a
session expires the caller runs the OTP flow again.

	me, err := session.Me(ctx)
	note, err := session.CreateNote(ctx, authsdk.NoteRequest{Title: "todo", Content: "milk"})

# Error Handling

Every non-2xx response is returned as an *Error carrying the stable error
code. Compare against the predefined values with errors.Is:

	if errors.Is(err, authsdk.ErrIdentityNotFound) {
		// route the user to sign up
	}

# Thread Safety

SDKClient and Session are safe for concurrent use.
*/
package authsdk
