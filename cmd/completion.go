package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_bvault() {
    local cur prev words cword
    _init_completion || return

    local commands="init decrypt add get ls rm verify compact keyring help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        get|rm|verify)
            # Complete with entry names from vault
            local names
            names=$(bvault ls 2>/dev/null | sed -n 's/^  \([^ ]*\) (.*$/\1/p')
            COMPREPLY=($(compgen -W "$names" -- "$cur"))
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save delete status" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _bvault bvault
`

const zshCompletion = `#compdef bvault

_bvault() {
    local -a commands
    commands=(
        'init:Create a .bvault vault in current directory'
        'decrypt:Decrypt a raw base64 blob'
        'add:Store a ciphertext triple under a name'
        'get:Decrypt a stored entry'
        'ls:List stored entries'
        'rm:Remove entries from the vault'
        'verify:Compare a decrypted entry with a local file'
        'compact:Compact vault to reclaim disk space'
        'keyring:Manage password stored in OS keyring'
        'completion:Generate shell completions'
        'help:Show help for a command'
    )

    if (( CURRENT == 2 )); then
        _describe 'command' commands
        return
    fi

    case "$words[2]" in
        get|rm|verify)
            local -a names
            names=(${(f)"$(bvault ls 2>/dev/null | sed -n 's/^  \([^ ]*\) (.*$/\1/p')"})
            _describe 'entry' names
            ;;
        keyring)
            _values 'action' save delete status
            ;;
        completion)
            _values 'shell' bash zsh fish
            ;;
        help)
            _describe 'command' commands
            ;;
    esac
}

_bvault
`

const fishCompletion = `complete -c bvault -f

complete -c bvault -n '__fish_use_subcommand' -a init -d 'Create a .bvault vault in current directory'
complete -c bvault -n '__fish_use_subcommand' -a decrypt -d 'Decrypt a raw base64 blob'
complete -c bvault -n '__fish_use_subcommand' -a add -d 'Store a ciphertext triple under a name'
complete -c bvault -n '__fish_use_subcommand' -a get -d 'Decrypt a stored entry'
complete -c bvault -n '__fish_use_subcommand' -a ls -d 'List stored entries'
complete -c bvault -n '__fish_use_subcommand' -a rm -d 'Remove entries from the vault'
complete -c bvault -n '__fish_use_subcommand' -a verify -d 'Compare a decrypted entry with a local file'
complete -c bvault -n '__fish_use_subcommand' -a compact -d 'Compact vault to reclaim disk space'
complete -c bvault -n '__fish_use_subcommand' -a keyring -d 'Manage password stored in OS keyring'
complete -c bvault -n '__fish_use_subcommand' -a completion -d 'Generate shell completions'
complete -c bvault -n '__fish_use_subcommand' -a help -d 'Show help for a command'

complete -c bvault -n '__fish_seen_subcommand_from keyring' -a 'save delete status'
complete -c bvault -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'
complete -c bvault -n '__fish_seen_subcommand_from get rm verify' -a '(bvault ls 2>/dev/null | sed -n "s/^  \([^ ]*\) (.*\$/\1/p")'
`
