package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// resolveClientID accepts either a numeric client id or a client name and
// resolves it against the backend's client list.
func resolveClientID(ctx context.Context, idOrName string) (int64, error) {
	if id, err := strconv.ParseInt(idOrName, 10, 64); err == nil {
		return id, nil
	}

	clients, err := appInstance.ClientRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list clients: %w", err)
	}

	for _, c := range clients {
		if strings.EqualFold(c.DisplayName, idOrName) {
			return c.ID, nil
		}
	}

	return 0, fmt.Errorf("no client named %q", idOrName)
}

// parseIDList parses a comma-separated id list like "1,2,3"
func parseIDList(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// truncate shortens a string to maxLen with an ellipsis
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
