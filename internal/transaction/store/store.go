package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/kasayonetim/kasa/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, title, amount, type, payment_method, fatura_tipi,
// transaction_date, description, region_id, region_name, expense_region_info,
// image_path, user_id, user_name, created_at, updated_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr, methodStr string

	var invoiceKind, description, note, imagePath, regionName, userName sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.Title, &tx.Amount, &typeStr, &methodStr, &invoiceKind,
		&tx.Date, &description, &tx.RegionID, &regionName, &note,
		&imagePath, &tx.UserID, &userName, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)
	tx.PaymentMethod = transaction.PaymentMethod(methodStr)
	tx.InvoiceKind = transaction.InvoiceKind(invoiceKind.String)
	tx.Description = description.String
	tx.RegionName = regionName.String
	tx.ExpenseRegionNote = note.String
	tx.ImagePath = imagePath.String
	tx.UserName = userName.String

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.title, t.amount, t.type, t.payment_method, t.fatura_tipi,
	t.transaction_date, t.description, t.region_id, r.name AS region_name,
	t.expense_region_info, t.image_path, t.user_id, p.full_name AS user_name,
	t.created_at, t.updated_at
`

const transactionJoins = `
	FROM transactions t
	LEFT JOIN regions r ON t.region_id = r.id
	LEFT JOIN profiles p ON t.user_id = p.id
`

func nullable(s string) any {
	if s == "" {
		return nil
	}

	return s
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (title, amount, type, payment_method, fatura_tipi,
			transaction_date, description, region_id, expense_region_info, image_path,
			user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.Title,
		tx.Amount,
		tx.Type,
		tx.PaymentMethod,
		nullable(string(tx.InvoiceKind)),
		tx.Date,
		nullable(tx.Description),
		tx.RegionID,
		nullable(tx.ExpenseRegionNote),
		nullable(tx.ImagePath),
		tx.UserID,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + transactionJoins + `WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + transactionJoins + `WHERE 1=1`

	var args []any

	argIdx := 1

	add := func(clause string, value any) {
		query += fmt.Sprintf(clause, argIdx)

		args = append(args, value)
		argIdx++
	}

	if filter.StartDate != nil {
		add(" AND t.transaction_date >= $%d", *filter.StartDate)
	}

	if filter.EndDate != nil {
		add(" AND t.transaction_date <= $%d", *filter.EndDate)
	}

	if filter.Type != nil {
		add(" AND t.type = $%d", *filter.Type)
	}

	if filter.PaymentMethod != nil {
		add(" AND t.payment_method = $%d", *filter.PaymentMethod)
	}

	if filter.InvoiceKind != nil {
		if *filter.InvoiceKind == transaction.InvoiceKindNone {
			query += " AND t.fatura_tipi IS NULL"
		} else {
			add(" AND t.fatura_tipi = $%d", *filter.InvoiceKind)
		}
	}

	if filter.RegionID != nil {
		add(" AND t.region_id = $%d", *filter.RegionID)
	}

	if filter.UserID != nil {
		add(" AND t.user_id = $%d", *filter.UserID)
	}

	if filter.ExpenseRegionNote != nil {
		add(" AND t.expense_region_info = $%d", *filter.ExpenseRegionNote)
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query += fmt.Sprintf(
			" AND (t.title ILIKE $%d OR t.description ILIKE $%d OR t.expense_region_info ILIKE $%d)",
			argIdx, argIdx, argIdx)

		args = append(args, pattern)
		argIdx++
	}

	sortBy := filter.SortBy
	if sortBy != transaction.SortByCreatedAt {
		sortBy = transaction.SortByDate
	}

	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	query += fmt.Sprintf(" ORDER BY t.%s %s", sortBy, direction)

	if filter.Limit > 0 {
		add(" LIMIT $%d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET title = $1, amount = $2, type = $3, payment_method = $4, fatura_tipi = $5,
			transaction_date = $6, description = $7, updated_at = NOW()
		WHERE id = $8
	`

	_, err := s.db.ExecContext(ctx, query,
		tx.Title,
		tx.Amount,
		tx.Type,
		tx.PaymentMethod,
		nullable(string(tx.InvoiceKind)),
		tx.Date,
		nullable(tx.Description),
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}
