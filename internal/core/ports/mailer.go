package ports

import "context"

// Mail is a single outbound message.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers outbound mail. Implementations are external collaborators;
// the core only enqueues.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// MailEnqueuer accepts mail for asynchronous delivery.
type MailEnqueuer interface {
	Enqueue(mail Mail)
}
