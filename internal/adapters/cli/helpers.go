package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	daemon "github.com/andrescamacho/manoria-go/internal/adapters/grpc"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	infoColor    = color.New(color.FgYellow)
)

// out is where commands write; tests swap it for a buffer
var out io.Writer = os.Stdout

// withClient connects to the daemon and runs fn with a request deadline
func withClient(fn func(ctx context.Context, client *daemon.DaemonClient) error) error {
	client, err := daemon.NewDaemonClient(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	return describeError(fn(ctx, client))
}

// describeError turns a status error into a message for the terminal
func describeError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.Unavailable:
		return fmt.Errorf("daemon unavailable at %s (is manoria-daemon running?)", socketPath)
	case codes.NotFound:
		return fmt.Errorf("not found: %s", st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("already exists: %s", st.Message())
	case codes.FailedPrecondition:
		return fmt.Errorf("rejected: %s", st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("invalid argument: %s", st.Message())
	case codes.ResourceExhausted:
		return fmt.Errorf("daemon is busy: %s", st.Message())
	default:
		return fmt.Errorf("%s: %s", st.Code(), st.Message())
	}
}

// parseAsOf reads an optional RFC 3339 instant
func parseAsOf(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --as-of %q: expected RFC 3339, e.g. 2024-03-01T13:00:00Z", value)
	}
	return &t, nil
}

func newTable(headers ...string) *tablewriter.Table {
	return tablewriter.NewTable(out, tablewriter.WithHeader(headers))
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}
