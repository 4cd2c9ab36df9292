package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ncobase/newsdesk/app"
	"github.com/ncobase/newsdesk/screen"
	"github.com/ncobase/newsdesk/session"
	"github.com/ncobase/newsdesk/structs"
	"github.com/spf13/cobra"
)

// passwordEnv lets scripts sign in without a flag or prompt
const passwordEnv = "NEWSDESK_PASSWORD"

func passwordFrom(cmd *cobra.Command, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if v := os.Getenv(passwordEnv); v != "" {
		return v, nil
	}
	return readLine(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
}

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var in structs.LoginInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(cmd, in.Password)
			if err != nil {
				return err
			}
			in.Password = pw

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				sc := screen.NewLogin(a.API, a.Session, nil)
				if err := sc.Submit(ctx, in); err != nil {
					return userError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", a.Session.Current(ctx).User())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "account password (or "+passwordEnv+")")
	return cmd
}

// NewRegisterCommand creates the register command
func NewRegisterCommand() *cobra.Command {
	var (
		in   structs.RegisterUserInput
		role string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in with it",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(cmd, in.Password)
			if err != nil {
				return err
			}
			in.Password = pw
			in.Role = structs.Role(role)

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				sc := screen.NewRegister(a.API, a.Session, nil)
				if err := sc.Submit(ctx, in); err != nil {
					return userError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registered and signed in as %s\n", a.Session.Current(ctx).User())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "account password (or "+passwordEnv+")")
	cmd.Flags().StringVar(&role, "role", "", "ADMIN, EDITOR or JOURNALIST")
	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Session.Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
				return nil
			})
		},
	}
}

// NewWhoamiCommand creates the whoami command
func NewWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				cur := a.Session.Current(ctx)
				out := cmd.OutOrStdout()
				if !cur.Authenticated() {
					fmt.Fprintln(out, "Not signed in")
					return nil
				}
				fmt.Fprintf(out, "%s (%s)\n", cur.User(), cur.Role)
				if exp, ok := session.ExpiresAt(cur.Token); ok {
					fmt.Fprintf(out, "Session expires %s\n", exp.Local().Format(time.RFC1123))
				}
				return nil
			})
		},
	}
}

// NewProfileCommand creates the profile command
func NewProfileCommand() *cobra.Command {
	var f screen.ProfileForm

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the signed-in user's name, email or password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				sc := screen.NewProfile(a.API, a.Session)
				cur := sc.Mount(ctx)
				if !cmd.Flags().Changed("name") {
					f.Name = cur.Name
				}
				if !cmd.Flags().Changed("email") {
					f.Email = cur.Email
				}
				if err := sc.Submit(ctx, f); err != nil {
					return userError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), sc.Message())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&f.Name, "name", "", "new display name")
	cmd.Flags().StringVar(&f.Email, "email", "", "new email")
	cmd.Flags().StringVar(&f.CurrentPassword, "current-password", "", "current password, required for a password change")
	cmd.Flags().StringVar(&f.NewPassword, "new-password", "", "new password")
	cmd.Flags().StringVar(&f.ConfirmPassword, "confirm-password", "", "new password again")
	return cmd
}
