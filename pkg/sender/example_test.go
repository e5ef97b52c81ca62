package sender_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/bft-labs/pushship/pkg/message"
	"github.com/bft-labs/pushship/pkg/sender"
)

// ExampleBuilder demonstrates building a sender and delivering a message.
func ExampleBuilder() {
	// A stand-in push server; in production this is your server's root URL.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	ps, err := sender.WithRootServerURL(srv.URL).
		PushApplicationID("app-id").
		MasterSecret("master-secret").
		Build()
	if err != nil {
		fmt.Printf("build failed: %v\n", err)
		return
	}

	msg := message.New().
		Alert("deploy finished").
		Aliases("ops@example.com").
		Build()

	status, err := ps.Send(context.Background(), msg)
	if err != nil {
		fmt.Printf("send failed: %v\n", err)
		return
	}
	fmt.Printf("status: %d\n", status)

	// Output: status: 202
}
