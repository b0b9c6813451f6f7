package device

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

// Session is an authenticated connection to one switch. Every method
// may fail; Close must be called once when the caller is done with it.
type Session interface {
	// Apply pushes a batch of configuration lines in one transaction.
	Apply(lines []string) error
	// Persist saves the running configuration to startup (write memory).
	Persist() error
	// Query runs a read-only show command and returns its raw output.
	Query(command string) (string, error)
	Close() error
}

// Credentials authenticates a session. EnableSecret is optional; when
// set, privileged mode is entered before any commands run.
type Credentials struct {
	Username     string
	Password     string
	EnableSecret string
}

// Dialer opens a Session to a host. The Configurator takes one of
// these so tests can substitute a fake switch.
type Dialer func(host string, creds Credentials) (Session, error)

// Client holds the active SSH connection to one switch.
type Client struct {
	client       *ssh.Client
	host         string
	enableSecret string
}

const (
	dialTimeout    = 5 * time.Second
	commandTimeout = 30 * time.Second
)

// Dial creates a Client with an active SSH connection to host:22.
func Dial(host string, creds Credentials) (Session, error) {
	sshConfig := &ssh.ClientConfig{
		User: creds.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(creds.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // Use a proper HostKeyCallback in production!
		Timeout:         dialTimeout,
		// Manually define all supported ciphers
		Config: ssh.Config{
			Ciphers: []string{
				// Modern ciphers
				"aes128-gcm@openssh.com",
				"aes256-gcm@openssh.com",
				"chacha20-poly1305@openssh.com",
				"aes128-ctr",
				"aes192-ctr",
				"aes256-ctr",

				// Legacy cipher that old switches still offer
				"aes128-cbc",
			},
			// KeyExchanges for HANDSHAKE
			KeyExchanges: []string{
				// Modern Kex
				"curve25519-sha256",
				"ecdh-sha2-nistp256",
				"ecdh-sha2-nistp384",
				"ecdh-sha2-nistp521",
				"diffie-hellman-group14-sha256",
				// Legacy Kex for old switches
				"diffie-hellman-group1-sha1",
				"diffie-hellman-group14-sha1",
				"diffie-hellman-group1-sha256",
				"diffie-hellman-group1-sha512",
				"diffie-hellman-group14-sha512",
			},
		},
	}

	sshClient, err := ssh.Dial("tcp", host+":22", sshConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to dial SSH to %s: %w", host, err)
	}

	return &Client{
		client:       sshClient,
		host:         host,
		enableSecret: creds.EnableSecret,
	}, nil
}

// Apply enters config mode, pushes the batch, and exits config mode.
// A line the switch rejects (a '%' response) fails the whole batch.
func (c *Client) Apply(lines []string) error {
	commands := make([]string, 0, len(lines)+2)
	commands = append(commands, "configure terminal")
	commands = append(commands, lines...)
	commands = append(commands, "end")

	output, err := c.run(commands)
	if err != nil {
		return err
	}
	if rejected := rejectedLine(output); rejected != "" {
		return fmt.Errorf("%s :: switch rejected configuration :: %s", c.host, rejected)
	}
	return nil
}

// Persist saves the running configuration to permanent storage.
func (c *Client) Persist() error {
	output, err := c.run([]string{"write memory"})
	if err != nil {
		return err
	}
	if rejected := rejectedLine(output); rejected != "" {
		return fmt.Errorf("%s :: failed to save configuration :: %s", c.host, rejected)
	}
	return nil
}

func (c *Client) Query(command string) (string, error) {
	return c.run([]string{command})
}

// Close closes the underlying SSH connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// run executes the commands in one interactive shell on the switch and
// returns everything the switch printed. Each call gets a fresh shell,
// so the enable escalation is replayed when a secret is configured.
func (c *Client) run(shellCommands []string) (string, error) {
	session, err := c.client.NewSession()
	if err != nil {
		log.Debugf("%s :: %v :: Failed to create session :: %v", c.host, shellCommands, err)
		return "", fmt.Errorf("%s :: failed to create session :: %w", c.host, err)
	}
	defer session.Close()

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}

	if err := session.RequestPty("vt100", 80, 200, modes); err != nil {
		return "", fmt.Errorf("request for pseudo-terminal failed for %s: %w", c.host, err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		return "", fmt.Errorf("unable to setup stdin for session on %s: %w", c.host, err)
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("unable to setup stdout for session on %s: %w", c.host, err)
	}

	if err := session.Shell(); err != nil {
		return "", fmt.Errorf("failed to start shell on %s: %w", c.host, err)
	}

	commands := []string{}
	if c.enableSecret != "" {
		commands = append(commands, "enable", c.enableSecret)
	}
	commands = append(commands, "terminal length 0") // Prevents paging '--More--' prompts
	commands = append(commands, shellCommands...)
	commands = append(commands, "exit")

	for _, cmd := range commands {
		if _, err := fmt.Fprintf(stdin, "%s\n", cmd); err != nil {
			return "", fmt.Errorf("failed to write to stdin on %s: %w", c.host, err)
		}
	}

	var buf bytes.Buffer
	// Channel to signal that session.Wait() has finished
	done := make(chan error, 1)

	// Goroutine to read stdout and wait for the session to close (after 'exit' command)
	go func() {
		// Reads from stdout until the session closes (EOF)
		// This must happen *before* session.Wait() for session.Wait() to be useful.
		buf.ReadFrom(stdout)
		done <- session.Wait() // Wait for the remote command/shell to exit
	}()

	select {
	case err := <-done:
		// io.EOF is often returned by session.Wait() on clean exit, which is fine
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("session wait failed on %s: %w", c.host, err)
		}
	case <-time.After(commandTimeout):
		// Timeout hit. Close the client connection to forcefully terminate the session.
		c.client.Close()
		return "", fmt.Errorf("%s :: command timed out after %s", c.host, commandTimeout)
	}

	return buf.String(), nil
}

// rejectedLine returns the first '%' error response in shell output,
// or "" when the switch accepted everything.
func rejectedLine(output string) string {
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "%") {
			return trimmed
		}
	}
	return ""
}
