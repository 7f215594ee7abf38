package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// parseLoginResponse extracts the token and user name from the login payload.
// A body without a token is an error so a broken response never overwrites a
// stored credential with an empty one.
func parseLoginResponse(r io.Reader) (token, fullName string, err error) {
	var loginResp struct {
		Token string `json:"token"`
		User  struct {
			FullName string `json:"full_name"`
		} `json:"user"`
	}
	if err := json.NewDecoder(r).Decode(&loginResp); err != nil {
		return "", "", err
	}
	if loginResp.Token == "" {
		return "", "", errors.New("response contained no token")
	}
	return loginResp.Token, loginResp.User.FullName, nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the ContractPlus server",
	Run: func(cmd *cobra.Command, args []string) {
		var email, password string
		scanner := bufio.NewScanner(os.Stdin)
		fmt.Print("Email: ")
		scanner.Scan()
		email = strings.TrimSpace(scanner.Text())
		fmt.Print("Password: ")
		scanner.Scan()
		password = strings.TrimSpace(scanner.Text())

		loginReq := map[string]string{
			"email":    email,
			"password": password,
		}
		body, _ := json.Marshal(loginReq)

		resp, err := http.Post(serverURL()+"/api/auth/login", "application/json", bytes.NewBuffer(body))
		if err != nil {
			fmt.Printf("Error connecting to server: %v\n", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			fmt.Println("Login failed. Check your credentials.")
			return
		}

		token, fullName, err := parseLoginResponse(resp.Body)
		if err != nil {
			fmt.Printf("Error decoding response: %v\n", err)
			return
		}

		// Save to config
		viper.Set("token", token)
		viper.Set("email", email)
		if err := viper.WriteConfig(); err != nil {
			fmt.Printf("Warning: failed to write config: %v\n", err)
		}

		fmt.Printf("Successfully logged in as %s!\n", fullName)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
