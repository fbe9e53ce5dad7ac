package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	ChangePassword(ctx context.Context) error

	Doctors(ctx context.Context) error
	ShowDoctor(ctx context.Context) error
	Slots(ctx context.Context) error
	Products(ctx context.Context) error
	ShowProduct(ctx context.Context) error
	Search(ctx context.Context) error
	LabTests(ctx context.Context) error

	Appointments(ctx context.Context) error
	Book(ctx context.Context) error
	CancelAppointment(ctx context.Context) error

	ShowCart(ctx context.Context) error
	AddToCart(ctx context.Context) error
	RemoveFromCart(ctx context.Context) error
	SetQuantity(ctx context.Context) error
	EmptyCart(ctx context.Context) error
	Checkout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Hygieia CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help              — show available commands
//	  - signup            — create an account
//	  - login             — authenticate
//	  - forgot, reset     — request and complete a password reset
//	  - doctors, products, search, labs — browse the public catalog
//	  - exit | quit       — leave the program
//
//	Logged in, additionally:
//	  - whoami            — show the signed-in user
//	  - profile           — view and update the profile
//	  - passwd            — change the password
//	  - doctor, slots     — doctor details and free slots
//	  - product           — product details
//	  - appointments      — list own appointments
//	  - book, cancel      — manage consultations
//	  - cart, add, remove, qty, clear, checkout — manage the cart
//	  - logout            — sign out
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("hg> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Account:  whoami, profile, passwd, logout")
				printlnFn("Doctors:  (d)octors, doctor, slots, book, appointments, cancel")
				printlnFn("Pharmacy: (p)roducts, product, search, labs")
				printlnFn("Cart:     cart, add, remove, qty, clear, checkout")
				printlnFn("Other:    exit")
			} else {
				printlnFn("Available commands: signup, login, forgot, reset, doctors, products, search, labs, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "d", "doctors":
			_ = a.Doctors(ctx)

		case "doctor":
			_ = a.ShowDoctor(ctx)

		case "slots":
			_ = a.Slots(ctx)

		case "p", "products":
			_ = a.Products(ctx)

		case "product":
			_ = a.ShowProduct(ctx)

		case "search":
			_ = a.Search(ctx)

		case "labs":
			_ = a.LabTests(ctx)

		case "appointments":
			_ = a.Appointments(ctx)

		case "book":
			_ = a.Book(ctx)

		case "cancel":
			_ = a.CancelAppointment(ctx)

		case "cart":
			_ = a.ShowCart(ctx)

		case "add":
			_ = a.AddToCart(ctx)

		case "remove":
			_ = a.RemoveFromCart(ctx)

		case "qty":
			_ = a.SetQuantity(ctx)

		case "clear", "empty":
			_ = a.EmptyCart(ctx)

		case "checkout":
			_ = a.Checkout(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
