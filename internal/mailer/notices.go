package mailer

import (
	"context"
	"fmt"

	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/joining"
)

// Notices formats the application's notification mails and hands them to the
// dispatcher. It satisfies the user and joining notifier seams.
type Notices struct {
	dispatcher *Dispatcher
	adminEmail string
}

func NewNotices(dispatcher *Dispatcher, adminEmail string) *Notices {
	return &Notices{dispatcher: dispatcher, adminEmail: adminEmail}
}

// OrganizerRegistered tells the admin a new organizer awaits approval.
func (n *Notices) OrganizerRegistered(name, email, roleName string) {
	n.dispatcher.Enqueue(Message{
		To:      n.adminEmail,
		Subject: "New organizer registration",
		HTML: fmt.Sprintf(
			"<p>A new %s has registered and is waiting for approval.</p><p>Name: %s<br>Email: %s</p>",
			roleName, name, email,
		),
	})
}

func (n *Notices) OrganizerDecision(name, email string, approved bool) {
	verdict := "approved"
	if !approved {
		verdict = "rejected"
	}
	n.dispatcher.Enqueue(Message{
		To:      email,
		Subject: "Your organizer account has been " + verdict,
		HTML: fmt.Sprintf(
			"<p>Hello %s,</p><p>Your organizer account has been %s.</p>",
			name, verdict,
		),
	})
}

func (n *Notices) PasswordResetOTP(email, otp string) {
	n.dispatcher.Enqueue(Message{
		To:      email,
		Subject: "Your password reset code",
		HTML: fmt.Sprintf(
			"<p>Your one-time code is <b>%s</b>. It expires in 5 minutes.</p>",
			otp,
		),
	})
}

// JoiningDecision mails the requester the organizer's verdict. Always
// returns nil; delivery failures are the dispatcher's problem.
func (n *Notices) JoiningDecision(_ context.Context, d joining.DecisionNotice) error {
	n.dispatcher.Enqueue(Message{
		To:      d.To,
		Subject: fmt.Sprintf("Your request to join %s has been %s", d.TripName, d.Status),
		HTML: fmt.Sprintf(
			"<p>Hello %s,</p><p>Your request to join <b>%s</b> has been <b>%s</b> by %s.</p><p>Trip date: %s<br>Duration: %s</p>",
			d.UserName, d.TripName, d.Status, d.OrganizerName,
			d.TripDate.Format("January 02, 2006"), d.TripDuration,
		),
	})
	return nil
}
