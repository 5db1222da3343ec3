package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user and a handful of sample articles so the public API has
// something to serve. No-op if data already exists.
func Seed(db *sql.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	return seedPosts(db)
}

func seedAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("users already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Default admin with 2FA not yet enrolled — they must set it up on
	// first login.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@tradefx.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@tradefx.local",
		"password", "admin",
	)
	return nil
}

// seedPosts inserts a small set of sample articles covering every category.
func seedPosts(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		return fmt.Errorf("seed check posts: %w", err)
	}
	if count > 0 {
		slog.Info("posts already seeded, skipping")
		return nil
	}

	samples := []struct {
		slug, title, excerpt, content, category, author, date string
		readingTime                                           int
		featured                                              bool
	}{
		{
			slug:    "understanding-eurusd-dynamics",
			title:   "Understanding EUR/USD Dynamics in Volatile Markets",
			excerpt: "What drives the world's most traded currency pair, and how to read it.",
			content: "## The Most Liquid Pair\n\nThe **EUR/USD** accounts for the largest share of daily forex volume. Interest rates set by central banks drive the long-term trend.\n\n### What to Watch\n\n- Central bank policy divergence\n- NFP releases and GDP prints\n- Support and resistance on the daily chart",
			category: "forex", author: "Research Team", date: "2024-03-01",
			readingTime: 6, featured: true,
		},
		{
			slug:    "taming-trading-psychology",
			title:   "Taming Your Trading Psychology",
			excerpt: "Discipline beats conviction. How to keep emotions out of execution.",
			content: "## Mind Over Markets\n\n> \"The market is a device for transferring money from the impatient to the patient.\"\n\nFear and greed drive most losses. A written plan with a fixed **stop loss** removes the decision from the heat of the moment.",
			category: "psychology", author: "Research Team", date: "2024-02-15",
			readingTime: 4,
		},
		{
			slug:    "position-sizing-basics",
			title:   "Position Sizing: The Only Edge You Control",
			excerpt: "Risk management starts before the trade is placed.",
			content: "## Sizing the Trade\n\n1. Decide the account risk per trade\n2. Measure the stop distance in pips\n3. Derive the position size\n\nConsistent **position sizing** keeps drawdown survivable regardless of win rate.",
			category: "risk", author: "Research Team", date: "2024-01-20",
			readingTime: 5,
		},
		{
			slug:    "fibonacci-retracements-guide",
			title:   "A Practical Guide to Fibonacci Retracements",
			excerpt: "Using Fibonacci levels with moving averages for confluence.",
			content: "## Confluence Matters\n\nA **Fibonacci** level on its own is weak. Combined with a moving average and a prior support zone it becomes a tradeable area.\n\n### Checklist\n\n- Draw from swing low to swing high\n- Look for the 61.8% retracement\n- Confirm with candlestick structure",
			category: "analysis", author: "Research Team", date: "2024-04-10",
			readingTime: 7,
		},
		{
			slug:    "what-is-a-pip",
			title:   "What Is a Pip? Forex Units Explained",
			excerpt: "Pips, lots, and leverage — the vocabulary every new trader needs.",
			content: "## The Basics\n\nA pip is the smallest standard price increment of a currency pair. Leverage magnifies both the pip value and the risk.\n\nStart small, learn the units, and only then scale up.",
			category: "education", author: "Research Team", date: "2024-05-02",
			readingTime: 3,
		},
	}

	for _, s := range samples {
		_, err := db.Exec(`
			INSERT INTO posts (slug, title, excerpt, content, category, featured_image,
			                   author, publish_date, reading_time, featured)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, s.slug, s.title, s.excerpt, s.content, s.category,
			"https://images.tradefx.local/"+s.slug+".jpg",
			s.author, s.date, s.readingTime, s.featured)
		if err != nil {
			return fmt.Errorf("seed insert post %s: %w", s.slug, err)
		}
	}

	slog.Info("database seeded with sample posts", "count", len(samples))
	return nil
}
