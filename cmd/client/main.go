// Command client is a small terminal client for the chat server. It copies
// stdin lines to the server and prints server lines, coloring room notices.
package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	env "github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress string `env:"CHAT_SERVER_ADDR,default=localhost:5000"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "client: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if len(os.Args) > 1 {
		cfg.ServerAddress = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", cfg.ServerAddress)
	if err != nil {
		return fmt.Errorf("dial %s: %w", cfg.ServerAddress, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	go func() {
		in := bufio.NewScanner(os.Stdin)
		for in.Scan() {
			if _, err := fmt.Fprintln(conn, in.Text()); err != nil {
				return
			}
		}
		if tcp, ok := conn.(*net.TCPConn); ok {
			_ = tcp.CloseWrite()
		}
	}()

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		printLine(sc.Text())
	}
	color.Gray.Println("disconnected")
	return nil
}

func printLine(line string) {
	switch {
	case strings.HasPrefix(line, "* "):
		color.Cyan.Println(line)
	case strings.HasPrefix(line, "["):
		if i := strings.Index(line, "] "); i > 0 {
			color.Green.Print(line[:i+1])
			fmt.Println(line[i+1:])
			return
		}
		fmt.Println(line)
	default:
		color.Yellow.Println(line)
	}
}
