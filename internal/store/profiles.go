package store

import (
	"fmt"
	"time"

	"github.com/maralthesage/RFM-Pipeline/internal/model"
	"github.com/maralthesage/RFM-Pipeline/internal/pipeline"
)

// BatchInsertProfiles writes the scored profiles of a run in one
// transaction.
func (s *Store) BatchInsertProfiles(runID string, profiles []*model.CustomerProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO profiles (
			run_id, customer_id,
			salutation, age_group, postal_code,
			channel, channel_tag, newsletter_type,
			registered_at, first_purchase, last_purchase,
			order_count, revenue,
			orders_old, revenue_old, orders_recent, revenue_recent,
			weighted_orders, weighted_revenue,
			seasonal_easter, seasonal_christmas,
			recency_score, monetary_score, frequency_score, combined_score,
			segment, prior_group
		) VALUES (
			?, ?,
			?, ?, ?,
			?, ?, ?,
			?, ?, ?,
			?, ?,
			?, ?, ?, ?,
			?, ?,
			?, ?,
			?, ?, ?, ?,
			?, ?
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range profiles {
		_, err := stmt.Exec(
			runID, p.CustomerID,
			p.Salutation, p.AgeGroup, p.PostalCode,
			p.Channel, p.ChannelTag, p.NewsletterType,
			nullDate(p.RegisteredAt), nullDate(p.FirstPurchase), nullDate(p.LastPurchase),
			p.OrderCount, p.Revenue,
			p.OrdersOld, p.RevenueOld, p.OrdersRecent, p.RevenueRecent,
			p.WeightedOrders, p.WeightedRevenue,
			boolInt(p.SeasonalEaster), boolInt(p.SeasonalChristmas),
			p.RecencyScore, p.MonetaryScore, p.FrequencyScore, p.CombinedScore,
			p.Segment, p.PriorGroup,
		)
		if err != nil {
			return fmt.Errorf("failed to insert profile %s: %w", p.CustomerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// BatchInsertSummary writes the cross-tab rows of a run in one
// transaction.
func (s *Store) BatchInsertSummary(runID string, rows []pipeline.SummaryRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO summary (run_id, segment, prior_group, customers, newsletter_subscribers)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(runID, r.Segment, r.PriorGroup, r.Customers, r.NewsletterSubscribers); err != nil {
			return fmt.Errorf("failed to insert summary row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSummary loads the cross-tab of a run in canonical segment order.
func (s *Store) GetSummary(runID string) ([]pipeline.SummaryRow, error) {
	rows, err := s.db.Query(
		"SELECT segment, prior_group, customers, newsletter_subscribers FROM summary WHERE run_id = ?",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load summary: %w", err)
	}
	defer rows.Close()

	var out []pipeline.SummaryRow
	for rows.Next() {
		var r pipeline.SummaryRow
		if err := rows.Scan(&r.Segment, &r.PriorGroup, &r.Customers, &r.NewsletterSubscribers); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	pipeline.SortSummary(out)
	return out, nil
}

func nullDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
