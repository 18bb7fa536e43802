// Command bookwizard is the terminal booking wizard: a four-step form
// that autosaves a local draft, resumes where you left off, and
// submits the finished request to the bookings API.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"nuffjamz/internal/events"
	"nuffjamz/internal/wizard"
	"nuffjamz/pkg/client"
	"nuffjamz/pkg/config"
	"nuffjamz/pkg/kafka"
	kafka_config "nuffjamz/pkg/kafka/config"
	"nuffjamz/pkg/logger"
	"nuffjamz/pkg/model"
	"nuffjamz/pkg/rules"
)

const ServiceName = "bookwizard"

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "bookings API base URL")
	draftPath := flag.String("draft", defaultDraftPath(), "path of the autosaved draft file")
	analytics := flag.Bool("analytics", false, "publish step views to Kafka")
	flag.Parse()

	log := logger.New(logger.Config{
		Level:   logger.WARN,
		Format:  logger.TEXT,
		Output:  os.Stderr,
		Service: ServiceName,
	})

	updates := make(chan wizard.State, 16)
	saveStatus := make(chan string, 16)

	opts := wizard.Options{
		Store:         wizard.NewFileStore(*draftPath),
		Submitter:     client.NewBookingClient(*apiURL),
		AutosaveDelay: config.DefaultDraftAutosaveDebounce,
		Log:           log,
		OnChange: func(s wizard.State) {
			select {
			case updates <- s:
			default:
			}
		},
		OnSaveStatus: func(status wizard.SaveStatus, err error) {
			msg := status.String()
			if err != nil {
				msg = fmt.Sprintf("%s (%v)", msg, err)
			}
			select {
			case saveStatus <- msg:
			default:
			}
		},
	}

	if *analytics {
		opts.Analytics = initAnalytics(log)
	}

	wiz := wizard.New(opts)
	defer wiz.Close()

	state := wiz.Start()
	if !state.Draft.IsEmpty() {
		fmt.Println("Resuming your saved booking draft.")
	}

	runLoop(wiz, state, updates, saveStatus)
}

func defaultDraftPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nuffjamz-draft.json"
	}
	return filepath.Join(home, ".nuffjamz", "draft.json")
}

func initAnalytics(log *logger.Logger) wizard.Analytics {
	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kafkaCfg, "wizard.analytics", "")
	if err != nil {
		log.Warn("Analytics disabled, failed to create Kafka producer", "error", err)
		return nil
	}
	return events.NewPublisher(producer, ServiceName)
}

func runLoop(wiz *wizard.Wizard, state wizard.State, updates chan wizard.State, saveStatus chan string) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		drainStatus(saveStatus)
		render(state)

		if state.Submitted {
			return
		}

		if state.Submitting {
			state = waitForResult(updates)
			continue
		}

		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println("\nDraft saved. See you next time.")
			return
		}

		state = handleInput(wiz, state, scanner.Text(), scanner)
	}
}

func handleInput(wiz *wizard.Wizard, state wizard.State, input string, scanner *bufio.Scanner) wizard.State {
	input = strings.TrimSpace(input)

	switch input {
	case "n", "next":
		return wiz.Dispatch(wizard.Next{})
	case "b", "back":
		return wiz.Dispatch(wizard.Back{})
	case "s", "submit":
		return wiz.Dispatch(wizard.Submit{})
	case "r", "reset":
		return wiz.Dispatch(wizard.Reset{})
	case "q", "quit":
		fmt.Println("Draft saved. See you next time.")
		wiz.Close()
		os.Exit(0)
	case "":
		return state
	}

	// A bare field number edits that field.
	fields := visibleFields(state.Step)
	if idx, err := strconv.Atoi(input); err == nil && idx >= 1 && idx <= len(fields) {
		field := fields[idx-1]
		fmt.Printf("%s: ", fieldLabel(field))
		if !scanner.Scan() {
			return state
		}
		return wiz.Dispatch(wizard.SetField{Field: field, Value: strings.TrimSpace(scanner.Text())})
	}

	fmt.Println("Commands: 1..n edit field, (n)ext, (b)ack, (s)ubmit, (r)eset, (q)uit")
	return state
}

func waitForResult(updates chan wizard.State) wizard.State {
	fmt.Println("Submitting your booking request...")
	for {
		select {
		case s := <-updates:
			if !s.Submitting {
				return s
			}
		case <-time.After(45 * time.Second):
			fmt.Println("Still waiting for the server...")
		}
	}
}

func drainStatus(saveStatus chan string) {
	for {
		select {
		case msg := <-saveStatus:
			if msg == "saved" {
				fmt.Println("  [draft saved]")
			}
		default:
			return
		}
	}
}

func render(state wizard.State) {
	fmt.Println()

	if state.Submitted {
		renderConfirmation(os.Stdout, state.Booking)
		return
	}

	fmt.Printf("Step %d of %d: %s\n", state.Step, wizard.LastStep, stepTitle(state.Step))
	fmt.Println(strings.Repeat("-", 40))

	if state.Step == wizard.StepReview {
		renderReview(state.Draft)
	} else {
		for i, field := range visibleFields(state.Step) {
			value := state.Draft.Field(field)
			if value == "" {
				value = "(not set)"
			}
			fmt.Printf("  %d. %-20s %s\n", i+1, fieldLabel(field)+":", value)
		}
	}

	if state.SubmitError != "" {
		fmt.Printf("\n  !! %s\n", state.SubmitError)
	}
	for _, fe := range state.FieldErrors {
		fmt.Printf("  !! %s: %s\n", fieldLabel(fe.Field), fe.Message)
	}
}

func renderConfirmation(w io.Writer, booking *model.Booking) {
	fmt.Fprintln(w, "Your booking request is in!")
	if booking != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %-15s %s\n", "Name:", booking.Name)
		if !booking.EventDate.IsZero() {
			fmt.Fprintf(w, "  %-15s %s\n", "Event date:", booking.EventDate.Format("Monday, January 2, 2006"))
		}
		fmt.Fprintf(w, "  %-15s %s\n", "Contact via:", booking.ContactMethod)
		if booking.ID != "" {
			fmt.Fprintf(w, "  %-15s %s\n", "Reference:", booking.ID)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "What happens next:")
	fmt.Fprintln(w, "  1. We review your request and check our availability.")
	fmt.Fprintln(w, "  2. You get a confirmation email with the details.")
	fmt.Fprintln(w, "  3. We'll be in touch within 24 hours.")
}

func renderReview(draft model.BookingDraft) {
	fmt.Println("  Review your request:")
	for _, field := range rules.CreateFields {
		if value := draft.Field(field); value != "" {
			fmt.Printf("    %-20s %s\n", fieldLabel(field)+":", value)
		}
	}
	fmt.Println("\n  Type 'submit' to send it.")
}

func visibleFields(step int) []string {
	switch step {
	case wizard.StepEventDetails:
		return []string{"eventType", "eventDate", "eventLocation", "guestCount", "budget"}
	case wizard.StepContactInfo:
		return []string{"name", "email", "phone", "contactMethod"}
	case wizard.StepPreferences:
		return []string{"musicPreferences", "specialRequests"}
	}
	return nil
}

func stepTitle(step int) string {
	switch step {
	case wizard.StepEventDetails:
		return "Event details"
	case wizard.StepContactInfo:
		return "Your contact info"
	case wizard.StepPreferences:
		return "Music & special requests"
	case wizard.StepReview:
		return "Review & submit"
	}
	return ""
}

func fieldLabel(field string) string {
	switch field {
	case "eventType":
		return "Event type"
	case "eventDate":
		return "Event date"
	case "eventLocation":
		return "Location"
	case "guestCount":
		return "Guest count"
	case "budget":
		return "Budget"
	case "name":
		return "Name"
	case "email":
		return "Email"
	case "phone":
		return "Phone"
	case "contactMethod":
		return "Contact via"
	case "musicPreferences":
		return "Music preferences"
	case "specialRequests":
		return "Special requests"
	}
	return field
}
