package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ccmadmin/ccm-admin/internal/admin"
	"github.com/ccmadmin/ccm-admin/internal/auth"
	"github.com/ccmadmin/ccm-admin/internal/config"
	"github.com/ccmadmin/ccm-admin/internal/forms"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage console users.",
}

var (
	bootstrapAdminName           string
	bootstrapAdminEmail          string
	bootstrapAdminPassword       string
	bootstrapAdminPasswordStdin  bool
	bootstrapAdminGeneratePasswd bool
)

var bootstrapAdminCmd = &cobra.Command{
	Use:   "bootstrap-admin",
	Short: "Create the first console administrator (no-op if one already exists).",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(bootstrapAdminName)
		if name == "" {
			return errors.New("--name is required")
		}
		email := auth.NormalizeEmail(bootstrapAdminEmail)
		if email == "" {
			return errors.New("--email is required")
		}

		password, generated, err := resolveBootstrapPassword(cmd)
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		pool, err := openPool(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		reg, err := loadRegistry(cfg)
		if err != nil {
			return err
		}
		svc, _ := newAdminService(pool, reg)

		created, err := bootstrapAdmin(ctx, svc, name, email, password)
		if err != nil {
			return err
		}
		if !created {
			cmd.Println("admin user already exists; nothing to do")
			return nil
		}

		cmd.Printf("created admin user: %s <%s>\n", name, email)
		if generated {
			cmd.Printf("generated password: %s\n", password)
		}
		return nil
	},
}

// bootstrapAdmin creates an administrator unless an active one exists.
func bootstrapAdmin(ctx context.Context, svc *admin.Service, name, email, password string) (bool, error) {
	admins, err := svc.Store().CountConsoleAdmins(ctx)
	if err != nil {
		return false, err
	}
	if admins > 0 {
		return false, nil
	}

	_, err = svc.CreateUser(ctx, admin.UserInput{
		Name:            name,
		Email:           email,
		Password:        password,
		PasswordConfirm: password,
		ConsoleRole:     auth.RoleAdmin,
	})
	if err != nil {
		if errs, ok := forms.FieldErrors(err); ok {
			return false, describeFieldErrors(errs)
		}
		return false, err
	}
	return true, nil
}

func describeFieldErrors(errs forms.Errors) error {
	parts := make([]string, 0, len(errs))
	for _, field := range errs.Fields() {
		parts = append(parts, field+": "+errs.Get(field))
	}
	return fmt.Errorf("invalid admin user: %s", strings.Join(parts, "; "))
}

func resolveBootstrapPassword(cmd *cobra.Command) (string, bool, error) {
	if bootstrapAdminPasswordStdin && bootstrapAdminGeneratePasswd {
		return "", false, errors.New("--password-stdin and --generate-password are mutually exclusive")
	}
	if bootstrapAdminPasswordStdin && bootstrapAdminPassword != "" {
		return "", false, errors.New("--password-stdin and --password are mutually exclusive")
	}
	if bootstrapAdminGeneratePasswd && bootstrapAdminPassword != "" {
		return "", false, errors.New("--generate-password and --password are mutually exclusive")
	}

	switch {
	case bootstrapAdminPasswordStdin:
		password, err := readPasswordLine(cmd.InOrStdin())
		return password, false, err
	case bootstrapAdminGeneratePasswd:
		password, err := generatePassword(24)
		return password, err == nil, err
	case bootstrapAdminPassword != "":
		return bootstrapAdminPassword, false, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", false, errors.New("no password provided (use --password, --password-stdin, or --generate-password)")
	}

	cmd.Print("Password: ")
	pass1, err := term.ReadPassword(fd)
	cmd.Println()
	if err != nil {
		return "", false, err
	}
	if len(pass1) == 0 {
		return "", false, errors.New("password is empty")
	}

	cmd.Print("Confirm password: ")
	pass2, err := term.ReadPassword(fd)
	cmd.Println()
	if err != nil {
		return "", false, err
	}
	if string(pass1) != string(pass2) {
		return "", false, errors.New("passwords do not match")
	}
	return string(pass1), false, nil
}

// readPasswordLine reads the first line of r without its line terminator.
func readPasswordLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errors.New("password is empty")
	}
	password := strings.TrimRight(scanner.Text(), "\r\n")
	if password == "" {
		return "", errors.New("password is empty")
	}
	return password, nil
}

func generatePassword(length int) (string, error) {
	if length < 16 {
		return "", errors.New("password length too short")
	}
	const alphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	const alphabetLen = byte(len(alphabet))
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = alphabet[b[i]%alphabetLen]
	}
	return string(b), nil
}

func init() {
	usersCmd.AddCommand(bootstrapAdminCmd)
	bootstrapAdminCmd.Flags().StringVar(&bootstrapAdminName, "name", "admin", "User name of the admin user")
	bootstrapAdminCmd.Flags().StringVar(&bootstrapAdminEmail, "email", "", "Email address for the admin user")
	bootstrapAdminCmd.Flags().StringVar(&bootstrapAdminPassword, "password", "", "Password for the admin user (discouraged; prefer --password-stdin)")
	bootstrapAdminCmd.Flags().BoolVar(&bootstrapAdminPasswordStdin, "password-stdin", false, "Read the password from stdin")
	bootstrapAdminCmd.Flags().BoolVar(&bootstrapAdminGeneratePasswd, "generate-password", false, "Generate a random password and print it")
	_ = bootstrapAdminCmd.MarkFlagRequired("email")
}
