package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/illarion/bvault/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		runInit(ctx, os.Args[2:])
	case "decrypt":
		runDecrypt(ctx, os.Args[2:])
	case "add":
		runAdd(ctx, os.Args[2:])
	case "get":
		runGet(ctx, os.Args[2:])
	case "ls":
		runLs(ctx, os.Args[2:])
	case "rm":
		runRm(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "compact":
		runCompact(ctx, os.Args[2:])
	case "keyring":
		runKeyring(ctx, os.Args[2:])
	case "completion":
		runCompletion(ctx, os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runInit(_ context.Context, args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Init()
}

func runDecrypt(_ context.Context, args []string) {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Usage: bvault decrypt <ciphertext_b64> <iv_b64> <salt_b64>")
		os.Exit(1)
	}

	cmd.Decrypt(fs.Arg(0), fs.Arg(1), fs.Arg(2))
}

func runAdd(_ context.Context, args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 4 {
		fmt.Fprintln(os.Stderr, "Usage: bvault add <name> <ciphertext_b64> <iv_b64> <salt_b64>")
		os.Exit(1)
	}

	cmd.Add(fs.Arg(0), fs.Arg(1), fs.Arg(2), fs.Arg(3))
}

func runGet(_ context.Context, args []string) {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: bvault get <name>")
		os.Exit(1)
	}

	cmd.Get(fs.Arg(0))
}

func runLs(_ context.Context, args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.List()
}

func runRm(_ context.Context, args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bvault rm <name> [name...]")
		os.Exit(1)
	}

	cmd.Remove(fs.Args())
}

func runVerify(_ context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: bvault verify <name> <file>")
		os.Exit(1)
	}

	cmd.Verify(fs.Arg(0), fs.Arg(1))
}

func runCompact(_ context.Context, args []string) {
	fs := flag.NewFlagSet("compact", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Compact()
}

func runKeyring(_ context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bvault keyring <save|delete|status>")
		os.Exit(1)
	}

	switch args[0] {
	case "save":
		cmd.KeyringSave()
	case "delete":
		cmd.KeyringDelete()
	case "status":
		cmd.KeyringStatus()
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring action: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: bvault keyring <save|delete|status>")
		os.Exit(1)
	}
}

func runCompletion(_ context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bvault completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("bvault - Decrypt password-protected bvault blobs")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  bvault <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  decrypt     Decrypt a raw base64 blob (ciphertext, IV, salt)")
	fmt.Println("  init        Create a .bvault vault in current directory")
	fmt.Println("  add         Store a ciphertext triple under a name")
	fmt.Println("  get         Decrypt a stored entry")
	fmt.Println("  ls          List stored entries")
	fmt.Println("  rm          Remove entries from the vault")
	fmt.Println("  verify      Compare a decrypted entry with a local file")
	fmt.Println("  compact     Compact vault to reclaim disk space")
	fmt.Println("  keyring     Manage password stored in OS keyring")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  bvault decrypt 'xi9Xk...' 'EA8OD...' 'AQIDB...'   # Decrypt a raw blob")
	fmt.Println("  bvault add db-password 'xi9Xk...' 'EA8OD...' 'AQIDB...'")
	fmt.Println("  bvault get db-password                            # Decrypt stored entry")
	fmt.Println()
	fmt.Println("The password is taken from BVAULT_PASSWORD, the OS keyring, or a prompt.")
	fmt.Println()
	fmt.Println("Use 'bvault help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "decrypt":
		fmt.Println("bvault decrypt <ciphertext_b64> <iv_b64> <salt_b64>")
		fmt.Println()
		fmt.Println("Decrypts a blob and prints the plaintext to stdout.")
		fmt.Println("All three arguments are standard base64 with padding.")
		fmt.Println("The key is derived from the password with PBKDF2-HMAC-SHA256")
		fmt.Println("(100,000 iterations); decryption is AES-256-CBC with PKCS#7 padding.")
		fmt.Println()
		fmt.Println("The blob format carries no authentication tag, so a decryption")
		fmt.Println("failure can mean a wrong password, corrupted data, or tampering -")
		fmt.Println("there is no way to tell these apart.")
	case "init":
		fmt.Println("bvault init")
		fmt.Println()
		fmt.Println("Creates a .bvault vault file in the current directory.")
		fmt.Println("The vault stores named ciphertext triples; it never stores")
		fmt.Println("passwords or plaintext.")
	case "add":
		fmt.Println("bvault add <name> <ciphertext_b64> <iv_b64> <salt_b64>")
		fmt.Println()
		fmt.Println("Stores an encrypted triple under a name. The blob stays opaque:")
		fmt.Println("no password is needed and nothing is decrypted. Re-adding an")
		fmt.Println("existing name replaces the entry.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  bvault add db-password 'xi9Xk...' 'EA8OD...' 'AQIDB...'")
	case "get":
		fmt.Println("bvault get <name>")
		fmt.Println()
		fmt.Println("Decrypts a stored entry and prints the plaintext to stdout.")
		fmt.Println("The password is taken from BVAULT_PASSWORD, the OS keyring,")
		fmt.Println("or an interactive prompt, in that order.")
	case "ls":
		fmt.Println("bvault ls")
		fmt.Println()
		fmt.Println("Lists stored entry names and timestamps. No password required.")
	case "rm":
		fmt.Println("bvault rm <name> [name...]")
		fmt.Println()
		fmt.Println("Removes entries from the vault.")
	case "verify":
		fmt.Println("bvault verify <name> <file>")
		fmt.Println()
		fmt.Println("Decrypts a stored entry and compares it with a local file.")
		fmt.Println("Prints a diff and exits 1 when they differ.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  bvault verify db-password .env.production")
	case "compact":
		fmt.Println("bvault compact")
		fmt.Println()
		fmt.Println("Compacts the vault file to reclaim space after removals.")
	case "keyring":
		fmt.Println("bvault keyring <save|delete|status>")
		fmt.Println()
		fmt.Println("Manages the password cached in the OS keyring for this vault.")
		fmt.Println("Stored passwords are scoped by a per-vault random ID, so")
		fmt.Println("multiple vaults can cache different passwords.")
	case "completion":
		fmt.Println("bvault completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Prints a shell completion script to stdout.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  bvault completion bash > /etc/bash_completion.d/bvault")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}
