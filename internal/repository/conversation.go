package repository

import (
	"context"

	"github.com/google/uuid"
)

const conversationColumns = `id, customer_name, customer_phone, message, response, status, created_at`

const insertConversation = `INSERT INTO conversations (id, customer_name, customer_phone, message, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + conversationColumns

type InsertConversationParams struct {
	ID            uuid.UUID `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
}

func (q *Queries) InsertConversation(c context.Context, arg InsertConversationParams) (Conversation, error) {
	row := q.db.QueryRow(c, insertConversation,
		arg.ID,
		arg.CustomerName,
		arg.CustomerPhone,
		arg.Message,
		arg.Status,
	)
	var i Conversation
	err := scanConversation(row, &i)
	return i, err
}

const findConversations = `SELECT ` + conversationColumns + ` FROM conversations ORDER BY created_at DESC`

func (q *Queries) FindConversations(c context.Context) ([]Conversation, error) {
	rows, err := q.db.Query(c, findConversations)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Conversation{}
	for rows.Next() {
		var i Conversation
		if err := scanConversation(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const respondConversation = `UPDATE conversations SET response = $2, status = $3 WHERE id = $1
RETURNING ` + conversationColumns

type RespondConversationParams struct {
	ID       uuid.UUID `json:"id"`
	Response string    `json:"response"`
	Status   string    `json:"status"`
}

func (q *Queries) RespondConversation(c context.Context, arg RespondConversationParams) (Conversation, error) {
	row := q.db.QueryRow(c, respondConversation, arg.ID, arg.Response, arg.Status)
	var i Conversation
	err := scanConversation(row, &i)
	return i, err
}

func scanConversation(row scanner, i *Conversation) error {
	return row.Scan(
		&i.ID,
		&i.CustomerName,
		&i.CustomerPhone,
		&i.Message,
		&i.Reply,
		&i.Status,
		&i.CreatedAt,
	)
}
