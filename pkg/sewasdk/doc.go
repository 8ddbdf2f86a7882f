/*
Package sewasdk is a Go client for the sewa API, and the home of the JSON
request and response types the server speaks.

# Client vs Session

Client covers the public endpoints: requesting and verifying a login PIN,
opening and accepting invitation links, and health checks. VerifyPin
returns a Session, which carries the session token and covers everything
that needs a login:

	client := sewasdk.NewClient("https://api.example.com")

	err := client.RequestPin(ctx, sewasdk.PinRequest{Email: email, Role: "LANDLORD"})
	// ... read the PIN from the email ...
	session, err := client.VerifyPin(ctx, sewasdk.VerifyPinRequest{Email: email, PIN: pin})

	prop, err := session.RegisterProperty(ctx, sewasdk.RegisterPropertyRequest{
		Title:       "Flat 2",
		MonthlyRent: 150000,
	})

# Errors

Every non-2xx response is returned as an *APIError carrying the HTTP status
and the service's error code. IsCode checks for a specific code:

	if sewasdk.IsCode(err, sewasdk.ErrorCodePinExpired) {
		// ask for a new PIN
	}

Requests are validated client-side against their `validate` tags before
they are sent, unless Client.SkipValidation is set.
*/
package sewasdk
