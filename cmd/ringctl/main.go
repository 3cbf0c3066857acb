// cmd/ringctl is the CLI client, built with Cobra.
//
// Usage:
//
//	ringctl create mykey "hello world"  --server http://localhost:9001
//	ringctl update mykey "hello again"  --server http://localhost:9001
//	ringctl get mykey                   --server http://localhost:9001
//	ringctl delete mykey                --server http://localhost:9001
//	ringctl cluster join 4 9004          --server http://localhost:9001
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ringstore/internal/client"
)

var (
	serverAddr string
	timeout    time.Duration
)

func main() {
	root := &cobra.Command{
		Use:   "ringctl",
		Short: "CLI client for the ring-replicated key-value store",
	}

	root.PersistentFlags().StringVarP(&serverAddr, "server", "s",
		"http://localhost:9001", "node address")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second,
		"HTTP request timeout")

	root.AddCommand(createCmd(), updateCmd(), getCmd(), deleteCmd(), clusterCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <key> <value>",
		Short: "Create a new key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverAddr, timeout)
			resp, err := c.Create(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			prettyPrint(resp)
			return nil
		},
	}
}

func updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <key> <value>",
		Short: "Update an existing key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverAddr, timeout)
			resp, err := c.Update(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			prettyPrint(resp)
			return nil
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Retrieve a value by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverAddr, timeout)
			resp, err := c.Get(context.Background(), args[0])
			if err == client.ErrNotFound {
				fmt.Printf("key %q not found\n", args[0])
				return nil
			}
			if err == client.ErrTimeout {
				fmt.Printf("no quorum for %q before deadline\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			prettyPrint(resp)
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverAddr, timeout)
			if err := c.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted %q\n", args[0])
			return nil
		},
	}
}

func clusterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Ring membership commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ring",
		Short: "Show the node's current ring view",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverAddr, timeout)
			resp, err := c.GetRaw(context.Background(), "/cluster/ring")
			if err != nil {
				return err
			}
			fmt.Println(resp)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "join <id> <port>",
		Short: "Add a node to this node's membership view",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, port, err := parseAddr(args[0], args[1])
			if err != nil {
				return err
			}
			c := client.New(serverAddr, timeout)
			return c.Join(context.Background(), id, port)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "leave <id> <port>",
		Short: "Remove a node from this node's membership view",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, port, err := parseAddr(args[0], args[1])
			if err != nil {
				return err
			}
			c := client.New(serverAddr, timeout)
			return c.Leave(context.Background(), id, port)
		},
	})

	return cmd
}

func parseAddr(idArg, portArg string) (uint32, uint16, error) {
	var id uint32
	var port uint16
	if _, err := fmt.Sscanf(idArg, "%d", &id); err != nil {
		return 0, 0, fmt.Errorf("invalid id %q: %w", idArg, err)
	}
	if _, err := fmt.Sscanf(portArg, "%d", &port); err != nil {
		return 0, 0, fmt.Errorf("invalid port %q: %w", portArg, err)
	}
	return id, port, nil
}

func prettyPrint(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(data))
}
