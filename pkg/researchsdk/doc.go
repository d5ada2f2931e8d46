/*
Package researchsdk is a Go client for the researchdesk API.

# Client vs Session

The package is organized around two types:

  - Client: public operations (health, register, login) and Session creation
  - Session: operations that need a bearer token

Create a Client with the server's base URL. API routes are mounted under
APIPrefix, which defaults to "/api":

	client := researchsdk.NewClient("https://research.example.com")

	health, err := client.GetLiveness(ctx)

	session, err := client.Login(ctx, researchsdk.LoginRequest{
		Email:    "ada@example.com",
		Password: "secret123",
	})

A Session carries the token returned by register or login:

	projects, err := session.ListProjects(ctx)

	analysis, err := session.Analyze(ctx, "Abstract: ...")

# Errors

Every non-2xx response becomes an *APIError carrying the HTTP status, the
server's error code and message, and per-field validation failures:

	_, err := session.GetProject(ctx, id)
	if researchsdk.IsNotFound(err) {
		// ...
	}
*/
package researchsdk
