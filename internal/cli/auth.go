package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/hygieia-health/hygieia-cli/internal/api"
	"github.com/hygieia-health/hygieia-cli/internal/common"
	"github.com/hygieia-health/hygieia-cli/internal/models"
	"github.com/hygieia-health/hygieia-cli/internal/validate"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getNumber = GetNumber

// Signup prompts for the account fields, validates them locally and
// creates the account. A successful signup leaves the user signed in.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword(os.Stdout, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	form := validate.SignupForm{
		Name:            name,
		Email:           email,
		Phone:           phone,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	}
	if err := validate.Struct(form); err != nil {
		fmt.Println(err.Error())
		return err
	}

	req := api.SignupRequest{
		Name:            form.Name,
		Email:           form.Email,
		Phone:           form.Phone,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	}
	if err := a.session.Signup(ctx, req); err != nil {
		fmt.Printf("Signup unsuccessful: %s\n", err.Error())
		return err
	}

	fmt.Println("Welcome to Hygieia!")
	return nil
}

// Login prompts for credentials and tries to authenticate. On success the
// session store holds the user and both tokens are persisted.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := validate.LoginForm{Email: email, Password: string(password)}
	if err := validate.Struct(form); err != nil {
		fmt.Println(err.Error())
		return err
	}

	if err := a.session.Login(ctx, form.Email, form.Password); err != nil {
		fmt.Printf("Login unsuccessful: %s\n", err.Error())
		return err
	}

	fmt.Printf("Welcome back, %s!\n", a.session.State().User.Name)
	return nil
}

// Logout signs out remotely on a best-effort basis and always ends with an
// anonymous local session.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Println("Logged out.")
	return nil
}

// WhoAmI prints the signed-in user and the access token expiry.
func (a *App) WhoAmI(ctx context.Context) error {
	state := a.session.State()
	if state.User == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("%s <%s> (%s)\n", state.User.Name, state.User.Email, state.User.Role)
	if exp, ok := a.session.TokenExpiry(ctx); ok {
		fmt.Printf("Token expires: %s\n", exp.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

// Profile shows the current profile and offers to update it. Empty answers
// keep the existing values.
func (a *App) Profile(ctx context.Context) error {
	state := a.session.State()
	if state.User == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("Name:  %s\n", state.User.Name)
	fmt.Printf("Email: %s\n", state.User.Email)
	fmt.Printf("Phone: %s\n", state.User.Phone)

	name, err := getSimpleText(a.reader, "New name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "New phone (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	var patch models.UserPatch
	if name != "" {
		patch.Name = &name
	}
	if phone != "" {
		patch.Phone = &phone
	}
	if patch.Name == nil && patch.Phone == nil {
		fmt.Println("Nothing to update.")
		return nil
	}

	if err := a.session.UpdateProfile(ctx, patch); err != nil {
		fmt.Printf("Update unsuccessful: %s\n", err.Error())
		return err
	}
	fmt.Println("Profile updated.")
	return nil
}

// ChangePassword prompts for the current and a new password.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := getPassword(os.Stdout, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)
	next, err := getPassword(os.Stdout, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	form := validate.PasswordChangeForm{CurrentPassword: string(current), NewPassword: string(next)}
	if err := validate.Struct(form); err != nil {
		fmt.Println(err.Error())
		return err
	}

	if err := a.session.ChangePassword(ctx, form.CurrentPassword, form.NewPassword); err != nil {
		fmt.Printf("Password change unsuccessful: %s\n", err.Error())
		return err
	}
	fmt.Println("Password changed.")
	return nil
}

// ForgotPassword requests a reset link for the given email. The backend
// answers the same way whether or not the account exists.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.ForgotPassword(ctx, email); err != nil {
		fmt.Printf("Request unsuccessful: %s\n", err.Error())
		return err
	}
	fmt.Println("If the account exists, a reset link has been sent.")
	return nil
}

// ResetPassword completes a reset with the token from the email.
func (a *App) ResetPassword(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter reset token", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.ResetPassword(ctx, token, string(password)); err != nil {
		fmt.Printf("Reset unsuccessful: %s\n", err.Error())
		return err
	}
	fmt.Println("Password reset, you can log in now.")
	return nil
}
