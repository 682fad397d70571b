package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/session"
)

// Status prints the session state and which local stores hold a token.
// It never prints the token itself.
func (a *App) Status(ctx context.Context) error {
	s := a.session.Snapshot()
	fmt.Fprintf(a.out, "Session:  %s\n", s.State())
	fmt.Fprintf(a.out, "Server:   %s\n", a.config.BaseURL)
	if a.Mode != "" {
		fmt.Fprintf(a.out, "Mode:     %s\n", a.Mode)
	}

	if s.IsAuthenticated {
		info := session.Inspect(s.Token)
		fmt.Fprintf(a.out, "Token:    %s\n", info.Fingerprint)
		if !info.ExpiresAt.IsZero() {
			fmt.Fprintf(a.out, "Expires:  %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
		}
	}

	st, err := a.store.Status(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Store:    unreadable:", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Store:    secure=%s plain=%s\n", present(st.Primary), present(st.Secondary))
	if !st.InSync {
		fmt.Fprintln(a.out, "Warning: the two local stores disagree; log in again to repair.")
	}
	return nil
}

func present(ok bool) string {
	if ok {
		return "saved"
	}
	return "empty"
}
