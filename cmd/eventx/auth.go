package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"eventx/session"
)

func (a *app) login(ctx context.Context, args []string) error {
	var creds session.Credentials
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--email":
			i++
			if i >= len(args) {
				return fmt.Errorf("--email requires a value")
			}
			creds.Email = args[i]
		case "--password":
			i++
			if i >= len(args) {
				return fmt.Errorf("--password requires a value")
			}
			creds.Password = args[i]
		default:
			return fmt.Errorf("unknown login option: %s", args[i])
		}
	}

	var err error
	if creds.Email == "" {
		if creds.Email, err = promptLine("Email: "); err != nil {
			return err
		}
	}
	if creds.Password == "" {
		if creds.Password, err = promptPassword("Password: "); err != nil {
			return err
		}
	}

	res, err := a.store.Login(ctx, creds)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if res.Token != "" {
		if err := a.cache.Save(res.Token); err != nil {
			a.log.Error(err, "could not cache session token")
		}
	}

	snap := a.store.Snapshot()
	fmt.Printf("Signed in as %s (%s)\n", snap.Principal.Name, snap.Principal.Role)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if token, err := a.cache.Load(); err == nil {
		a.client.SetToken(token)
	}
	a.store.Logout(ctx)
	if err := a.cache.Delete(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	a.restoreSession(ctx)

	snap := a.store.Snapshot()
	if !snap.Principal.Present() {
		if snap.Availability == session.AvailabilityUnreachable {
			fmt.Println("Not signed in (backend unreachable; signing in will not help until it is back).")
			return nil
		}
		fmt.Println("Not signed in. Run 'eventx login'.")
		return nil
	}

	fmt.Printf("Name:  %s\n", snap.Principal.Name)
	fmt.Printf("Email: %s\n", snap.Principal.Email)
	fmt.Printf("Role:  %s\n", snap.Principal.Role)
	return nil
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(prompt)
	}
	fmt.Print(prompt)
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
