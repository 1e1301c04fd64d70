package mysql

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/xiebiao/bookworm/pkg/clock"
	"github.com/xiebiao/bookworm/pkg/logger"
)

// 演示账号
const (
	SeedAdminEmail    = "admin@bookworm.dev"
	SeedCustomerEmail = "reader@bookworm.dev"
	SeedPassword      = "bookworm123"
)

// Seed 写入确定性的演示数据，books表非空时跳过
func Seed(ctx context.Context, db *gorm.DB, clk clock.Clock) error {
	var count int64
	if err := db.WithContext(ctx).Model(&BookModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("检查演示数据失败: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("生成演示账号密码失败: %w", err)
	}
	now := clk.Now().UTC()
	today := clock.Date(now)

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := []UserModel{
			{FirstName: "Ada", LastName: "Admin", Email: SeedAdminEmail, Password: string(hash), Admin: true, CreatedAt: now},
			{FirstName: "Rita", LastName: "Reader", Email: SeedCustomerEmail, Password: string(hash), CreatedAt: now},
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		authors := []AuthorModel{
			{Name: "Isaac Asimov", Bio: "Science fiction writer and professor of biochemistry."},
			{Name: "Jane Austen", Bio: "English novelist known for romantic fiction."},
			{Name: "Yu Hua", Bio: "Chinese author of novels and short stories."},
			{Name: "Donald Knuth", Bio: "Computer scientist, author of The Art of Computer Programming."},
		}
		if err := tx.Create(&authors).Error; err != nil {
			return err
		}

		categories := []CategoryModel{
			{Name: "Fiction", Description: "Novels and short stories"},
			{Name: "Science Fiction", Description: "Speculative and futuristic fiction"},
			{Name: "Computer Science", Description: "Programming and algorithms"},
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		type seedBook struct {
			title, summary, price string
			author, category      int
		}
		seeds := []seedBook{
			{"Foundation", "The fall of the Galactic Empire and the plan to shorten the dark age.", "19.99", 0, 1},
			{"I, Robot", "Stories about the Three Laws of Robotics.", "14.50", 0, 1},
			{"The Gods Themselves", "Contact with a parallel universe through an energy pump.", "12.00", 0, 1},
			{"Pride and Prejudice", "Elizabeth Bennet and Mr. Darcy.", "9.99", 1, 0},
			{"Emma", "A young woman who meddles in matchmaking.", "8.75", 1, 0},
			{"Persuasion", "A second chance at love eight years later.", "7.50", 1, 0},
			{"To Live", "A man survives decades of upheaval in rural China.", "15.00", 2, 0},
			{"Chronicle of a Blood Merchant", "A silk worker sells his blood to support his family.", "13.25", 2, 0},
			{"The Art of Computer Programming", "Fundamental algorithms.", "99.99", 3, 2},
			{"Concrete Mathematics", "A foundation for computer science.", "79.00", 3, 2},
			{"Literate Programming", "Essays on programs as literature.", "45.00", 3, 2},
			{"The Caves of Steel", "A detective and a robot partner.", "11.00", 0, 1},
		}
		books := make([]BookModel, len(seeds))
		for i, s := range seeds {
			authorID, categoryID := authors[s.author].ID, categories[s.category].ID
			books[i] = BookModel{
				Title:      s.title,
				Summary:    s.summary,
				Price:      decimal.RequireFromString(s.price),
				CoverPhoto: fmt.Sprintf("book%d", i+1),
				AuthorID:   &authorID,
				CategoryID: &categoryID,
				CreatedAt:  now,
			}
		}
		if err := tx.Create(&books).Error; err != nil {
			return err
		}

		nextMonth := today.AddDate(0, 1, 0)
		expired := today.AddDate(0, 0, -10)
		discounts := []DiscountModel{
			{BookID: books[0].ID, StartDate: today.AddDate(0, 0, -7), EndDate: &nextMonth, Price: decimal.RequireFromString("14.99")},
			{BookID: books[3].ID, StartDate: today.AddDate(0, 0, -1), Price: decimal.RequireFromString("6.99")},
			{BookID: books[8].ID, StartDate: today, EndDate: &nextMonth, Price: decimal.RequireFromString("79.99")},
			{BookID: books[6].ID, StartDate: today.AddDate(0, 0, -30), EndDate: &expired, Price: decimal.RequireFromString("10.00")},
			{BookID: books[10].ID, StartDate: today.AddDate(0, 0, 7), Price: decimal.RequireFromString("40.00")},
		}
		if err := tx.Create(&discounts).Error; err != nil {
			return err
		}

		var reviews []ReviewModel
		stars := [][]int{{5, 4, 5}, {4, 3}, {3}, {5, 5, 4, 5}, {4}, {}, {5, 4}, {3, 2}, {5, 5, 5}, {4}, {}, {2, 3}}
		for i, ss := range stars {
			for j, s := range ss {
				reviews = append(reviews, ReviewModel{
					BookID:     books[i].ID,
					Title:      fmt.Sprintf("Review %d of %s", j+1, books[i].Title),
					Details:    "Seeded review.",
					ReviewDate: now.Add(-time.Duration(j+1) * 24 * time.Hour),
					RatingStar: s,
				})
			}
		}
		if err := tx.Create(&reviews).Error; err != nil {
			return err
		}

		logger.Ctx(ctx).Info().
			Int("books", len(books)).
			Int("discounts", len(discounts)).
			Int("reviews", len(reviews)).
			Msg("demo catalog seeded")
		return nil
	})
}
