package email

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"workdesk/internal/platform/config"
)

type sessionLog struct {
	commands []string
	data     strings.Builder
}

// serveSMTP runs one scripted SMTP session on the listener. STARTTLS is
// always refused so the test can observe whether the client insisted on it.
func serveSMTP(t *testing.T, ln net.Listener, log *sessionLog, done chan<- struct{}) {
	t.Helper()
	defer close(done)

	conn, err := ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	reply := func(line string) { fmt.Fprintf(conn, "%s\r\n", line) }
	reply("220 mail.test ESMTP")

	reader := bufio.NewReader(conn)
	inData := false
	for {
		raw, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line := strings.TrimRight(raw, "\r\n")
		if inData {
			if line == "." {
				inData = false
				reply("250 2.0.0 accepted")
				continue
			}
			log.data.WriteString(line + "\n")
			continue
		}

		log.commands = append(log.commands, line)
		switch {
		case strings.HasPrefix(line, "EHLO"), strings.HasPrefix(line, "HELO"):
			reply("250-mail.test")
			reply("250 SIZE 1048576")
		case line == "STARTTLS":
			reply("502 STARTTLS not supported")
		case line == "DATA":
			inData = true
			reply("354 end with .")
		case line == "QUIT":
			reply("221 bye")
			return
		default:
			reply("250 OK")
		}
	}
}

func mailerFor(t *testing.T, ln net.Listener, useTLS bool) Mailer {
	t.Helper()
	host, portRaw, err := net.SplitHostPort(ln.Addr().String())
	if err != nil {
		t.Fatalf("split addr: %v", err)
	}
	port, _ := strconv.Atoi(portRaw)
	return New(config.Config{
		EmailEnabled: true,
		SMTPHost:     host,
		SMTPPort:     port,
		SMTPUseTLS:   useTLS,
	})
}

func TestNewReturnsNoopWhenDisabled(t *testing.T) {
	m := New(config.Config{EmailEnabled: false, SMTPHost: "mail.test"})
	if _, ok := m.(noopMailer); !ok {
		t.Fatalf("expected noop mailer, got %T", m)
	}
	if err := m.Send(context.Background(), "a@test", "b@test", "s", "b"); err != nil {
		t.Fatalf("noop send: %v", err)
	}
}

func TestSendDeliversWithoutTLSWhenDisabled(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	var log sessionLog
	done := make(chan struct{})
	go serveSMTP(t, ln, &log, done)

	m := mailerFor(t, ln, false)
	if err := m.Send(context.Background(), "hr@test", "ada@test", "Task assigned", "You picked up a task."); err != nil {
		t.Fatalf("send: %v", err)
	}
	<-done

	for _, cmd := range log.commands {
		if cmd == "STARTTLS" {
			t.Fatal("STARTTLS issued although SMTP_USE_TLS is off")
		}
	}
	body := log.data.String()
	if !strings.Contains(body, "Subject: Task assigned") || !strings.Contains(body, "You picked up a task.") {
		t.Fatalf("unexpected message body:\n%s", body)
	}
}

func TestSendFailsWhenTLSRequiredButUnavailable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	var log sessionLog
	done := make(chan struct{})
	go serveSMTP(t, ln, &log, done)

	m := mailerFor(t, ln, true)
	err = m.Send(context.Background(), "hr@test", "ada@test", "Task assigned", "body")
	if err == nil {
		t.Fatal("expected send to fail when the relay refuses STARTTLS")
	}
	if !strings.Contains(err.Error(), "starttls") {
		t.Fatalf("error should name the TLS upgrade, got: %v", err)
	}
	<-done

	if got := log.data.String(); got != "" {
		t.Fatalf("no mail may be delivered in the clear, got:\n%s", got)
	}
}
