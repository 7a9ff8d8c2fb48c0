package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"driver-auth/internal/mylogger"
)

// helper walks a running auth service through register, login and profile.
func main() {
	baseURL := flag.String("url", "http://localhost:3000", "auth service base URL")
	email := flag.String("email", fmt.Sprintf("driver-%d@example.com", time.Now().Unix()), "driver email")
	password := flag.String("password", "secret", "driver password")
	logLevel := flag.String("log-level", mylogger.LevelInfo, "log level")
	flag.Parse()

	appLogger, err := mylogger.New(*logLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	client := NewHTTPClient(*baseURL, appLogger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, client, appLogger, *email, *password); err != nil {
		appLogger.Error("smoke run failed", err)
		log.Fatal(err)
	}
}

func run(ctx context.Context, client *HTTPClient, appLogger mylogger.Logger, email, password string) error {
	status, body, err := client.DoRequest(ctx, http.MethodPost, "/register", RegistrationRequest{
		Nama:      "Budi",
		Email:     email,
		NoHP:      "0812",
		Password:  password,
		Kendaraan: "motor",
	}, nil)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("register: unexpected status %d: %s", status, body)
	}
	appLogger.Action("register").Info("driver registered", "email", email)

	status, body, err = client.DoRequest(ctx, http.MethodPost, "/login", LoginRequest{Email: email, Password: password}, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("login: unexpected status %d: %s", status, body)
	}
	var loginResp LoginResponse
	if err := json.Unmarshal(body, &loginResp); err != nil {
		return fmt.Errorf("login: decode response: %w", err)
	}
	appLogger.Action("login").Info("driver logged in")

	status, body, err = client.DoRequest(ctx, http.MethodGet, "/profile", nil, map[string]string{
		"Authorization": "Bearer " + loginResp.Token,
	})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("profile: unexpected status %d: %s", status, body)
	}
	appLogger.Action("profile").Info("profile fetched", "profile", string(body))
	return nil
}
