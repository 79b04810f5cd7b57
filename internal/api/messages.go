package api

import "context"

// MessageInput carries the writable message fields.
type MessageInput struct {
	Destinataire int
	Contenu      string
	Lu           *bool
}

// CreateBody returns the JSON creation payload.
func (in MessageInput) CreateBody() map[string]any {
	body := map[string]any{
		"destinataire": in.Destinataire,
		"contenu":      in.Contenu,
	}
	if in.Lu != nil {
		body["lu"] = *in.Lu
	}
	return body
}

// UpdateBody returns a partial JSON payload holding only the fields set.
func (in MessageInput) UpdateBody() map[string]any {
	body := map[string]any{}
	if in.Destinataire != 0 {
		body["destinataire"] = in.Destinataire
	}
	if in.Contenu != "" {
		body["contenu"] = in.Contenu
	}
	if in.Lu != nil {
		body["lu"] = *in.Lu
	}
	return body
}

// Create sends a message.
func (s MessagesService) Create(ctx context.Context, in MessageInput) (*Message, error) {
	return s.create(ctx, jsonBody{in.CreateBody()})
}

// Update partially updates a message (PATCH).
func (s MessagesService) Update(ctx context.Context, id int, in MessageInput) (*Message, error) {
	return s.update(ctx, id, jsonBody{in.UpdateBody()})
}

// MarkRead flags a message as read.
func (s MessagesService) MarkRead(ctx context.Context, id int) (*Message, error) {
	read := true
	return s.Update(ctx, id, MessageInput{Lu: &read})
}
