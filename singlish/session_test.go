package singlish

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestSessionKeystrokes(t *testing.T) {
	session := testEngine.NewSession(context.Background())
	defer session.Close()

	var g Generation
	var err error
	for _, buffer := range []string{"meeka ", "meeka hariyanne naee ", "meeka hariyanne naee appaa"} {
		g, err = session.Submit(buffer)
		checkError(err)
	}
	assertEqual(t, g, Generation(3))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	output, err := session.Wait(ctx, g)
	checkError(err)
	assertSinhala(t, output, "මේක හරියන්නේ නෑ අප්පා")

	latest, result := session.Latest()
	assertEqual(t, latest, g)
	assertEqual(t, result, output)
}

func TestSessionMonotonic(t *testing.T) {
	session := NewSession(context.Background(), testEngine, 4)

	// Output i is "මම" repeated i times
	var (
		mu       sync.Mutex
		received []int
	)
	session.Subscribe(func(output string) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, len(strings.Fields(output)))
	})

	var g Generation
	var buffer string
	for i := 1; i <= 50; i++ {
		buffer += "mama "
		var err error
		g, err = session.Submit(buffer)
		checkError(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := session.Wait(ctx, g)
	checkError(err)
	checkError(session.Close())

	mu.Lock()
	defer mu.Unlock()

	if len(received) == 0 {
		t.Fatal("no output delivered")
	}
	for i := 1; i < len(received); i++ {
		if received[i] <= received[i-1] {
			t.Errorf("output %d delivered after %d", received[i], received[i-1])
		}
	}
	assertEqual(t, received[len(received)-1], 50)
}

func TestSessionDiscardsStale(t *testing.T) {
	session := NewSession(context.Background(), testEngine, 1)
	defer session.Close()

	var calls []string
	cancelSub := session.Subscribe(func(output string) {
		calls = append(calls, output)
	})

	session.publish(Evaluation{Generation: 5, Buffer: "api", Result: "අපි"})
	session.publish(Evaluation{Generation: 3, Buffer: "mama", Result: "මම"})
	session.publish(Evaluation{Generation: 5, Buffer: "api", Result: "අපි"})

	latest, result := session.Latest()
	assertEqual(t, latest, Generation(5))
	assertEqual(t, result, "අපි")
	assertEqual(t, len(calls), 1)

	cancelSub()
	session.publish(Evaluation{Generation: 6, Buffer: "oyaa", Result: "ඔයා"})
	assertEqual(t, len(calls), 1)

	// Generation 4 is covered by 6
	output, err := session.Wait(context.Background(), 4)
	checkError(err)
	assertEqual(t, output, "ඔයා")
}

func TestSessionWaitTimeout(t *testing.T) {
	session := NewSession(context.Background(), testEngine, 1)
	defer session.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := session.Wait(ctx, 1)
	assertEqual(t, err, context.DeadlineExceeded)
}

func TestSessionClose(t *testing.T) {
	session := NewSession(context.Background(), testEngine, 1)

	done := make(chan error)
	go func() {
		_, err := session.Wait(context.Background(), 1)
		done <- err
	}()

	checkError(session.Close())
	assertEqual(t, <-done, ErrSessionClosed)

	_, err := session.Submit("mama")
	assertEqual(t, err, ErrSessionClosed)

	// Closing twice is fine
	checkError(session.Close())
}

func TestSessionParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	session := NewSession(ctx, testEngine, 1)
	defer session.Close()

	cancel()

	g, err := session.Submit("mama")
	checkError(err)

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer waitCancel()

	// Nothing is published once the parent is done
	_, err = session.Wait(waitCtx, g)
	assertEqual(t, err, context.DeadlineExceeded)
}
