package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

// ticketctl drives the service's HTTP API by hand: inspecting a booking,
// retrying a stuck ticket, or forcing the other supplier family when the
// aggregator's isLCC flag turned out wrong.

type client struct {
	baseURL string
	hc      *http.Client
}

func newClient(baseURL string) *client {
	return &client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 90 * time.Second},
	}
}

func (c *client) do(method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, out)
	}
	return out, nil
}

func printJSON(raw []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return
	}
	fmt.Println(buf.String())
}

func main() {
	app := &cli.App{
		Name:  "ticketctl",
		Usage: "Inspect bookings and drive ticket issuance",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "service base URL",
				Value:   "http://localhost:8080",
				EnvVars: []string{"FLIGHTS_ADDR"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "booking",
				ArgsUsage: "<booking_id>",
				Usage:     "show a stored reservation",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "refresh",
						Usage: "fetch the live supplier snapshot too",
					},
				},
				Action: func(c *cli.Context) error {
					bookingID := c.Args().First()
					if bookingID == "" {
						return fmt.Errorf("booking_id is required")
					}

					path := "/bookings/" + bookingID
					if c.Bool("refresh") {
						path += "?refresh=true"
					}

					out, err := newClient(c.String("addr")).do(http.MethodGet, path, nil)
					if err != nil {
						return err
					}

					printJSON(out)
					return nil
				},
			},
			{
				Name:      "ticket",
				ArgsUsage: "<booking_id>",
				Usage:     "issue or retry the ticket for a reservation",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "force",
						Usage: "override the supplier family (GDS or LCC)",
					},
				},
				Action: func(c *cli.Context) error {
					bookingID := c.Args().First()
					if bookingID == "" {
						return fmt.Errorf("booking_id is required")
					}

					body := map[string]any{}
					if force := c.String("force"); force != "" {
						body["force_family"] = force
					}

					out, err := newClient(c.String("addr")).do(http.MethodPost, "/bookings/"+bookingID+"/ticket", body)
					if err != nil {
						return err
					}

					printJSON(out)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
