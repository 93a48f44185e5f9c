package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type author struct {
	ID     string `gorm:"primaryKey"`
	Name   string
	Secret string
}

type post struct {
	ID       string `gorm:"primaryKey"`
	AuthorID string
	Title    string
	Score    int
}

type vote struct {
	ID     string `gorm:"primaryKey"`
	PostID string
	UserID string
}

type authorRef struct {
	ID   string `gorm:"column:id"`
	Name string `gorm:"column:name"`
}

type postRow struct {
	ID     string    `gorm:"column:id"`
	Title  string    `gorm:"column:title"`
	Score  int       `gorm:"column:score"`
	Votes  int64     `gorm:"column:votes"`
	Voted  bool      `gorm:"column:voted"`
	Author authorRef `gorm:"embedded;embeddedPrefix:author_"`
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&author{}, &post{}, &vote{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&author{ID: "a1", Name: "alice", Secret: "s1"}).Error)
	require.NoError(t, db.Create(&author{ID: "a2", Name: "bob", Secret: "s2"}).Error)
	for i := 1; i <= 25; i++ {
		owner := "a1"
		if i%5 == 0 {
			owner = "a2"
		}
		require.NoError(t, db.Create(&post{ID: fmt.Sprintf("p%02d", i), AuthorID: owner, Title: fmt.Sprintf("post %02d", i), Score: i}).Error)
	}
	// orphan post, author never existed
	require.NoError(t, db.Create(&post{ID: "p99", AuthorID: "ghost", Title: "orphan", Score: 99}).Error)
	require.NoError(t, db.Create(&vote{ID: "v1", PostID: "p01", UserID: "a2"}).Error)
	require.NoError(t, db.Create(&vote{ID: "v2", PostID: "p01", UserID: "a1"}).Error)
	require.NoError(t, db.Create(&vote{ID: "v3", PostID: "p02", UserID: "a1"}).Error)
}

func postPipeline(viewer string, page Page) *Pipeline {
	return New("posts AS p",
		Join("JOIN authors AS a ON a.id = p.author_id"),
		Project(
			Col("p.id", "id"),
			Col("p.title", "title"),
			Col("p.score", "score"),
			Col("a.id", "author_id"),
			Col("a.name", "author_name"),
		),
		CountOf("votes", "votes AS x", "x.post_id = p.id"),
		ExistsIn("voted", "votes AS y", "y.post_id = p.id AND y.user_id = ?", viewer),
		Sort("p.score", false),
		Paginate(page),
	)
}

func TestPaginateWindow(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)
	ctx := context.Background()

	cases := []struct {
		page     Page
		wantLen  int
		wantHead string
	}{
		{Page{Number: 1, Limit: 10}, 10, "p01"},
		{Page{Number: 2, Limit: 10}, 10, "p11"},
		{Page{Number: 3, Limit: 10}, 5, "p21"},
		{Page{Number: 4, Limit: 10}, 0, ""},
		{Page{Number: 1, Limit: 100}, 25, "p01"},
		{Page{Number: 7, Limit: 4}, 1, "p25"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("page=%d,limit=%d", tc.page.Number, tc.page.Limit), func(t *testing.T) {
			var rows []*postRow
			require.NoError(t, postPipeline("", tc.page).Run(ctx, db, &rows))
			assert.LessOrEqual(t, len(rows), tc.page.Limit)
			assert.Len(t, rows, tc.wantLen)
			if tc.wantLen > 0 {
				assert.Equal(t, tc.wantHead, rows[0].ID)
			}

			total, err := postPipeline("", tc.page).Count(ctx, db)
			require.NoError(t, err)
			// the orphan post is dropped by the inner join
			assert.Equal(t, int64(25), total)
		})
	}
}

func TestDeriveAndJoin(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	var rows []*postRow
	require.NoError(t, postPipeline("a1", Page{Number: 1, Limit: 3}).Run(context.Background(), db, &rows))
	require.Len(t, rows, 3)

	assert.Equal(t, int64(2), rows[0].Votes)
	assert.True(t, rows[0].Voted)
	assert.Equal(t, "alice", rows[0].Author.Name)
	assert.Equal(t, "a1", rows[0].Author.ID)

	assert.Equal(t, int64(1), rows[1].Votes)
	assert.True(t, rows[1].Voted)

	assert.Equal(t, int64(0), rows[2].Votes)
	assert.False(t, rows[2].Voted)
}

func TestMatchNarrowsCount(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)
	ctx := context.Background()

	p := postPipeline("", Page{Number: 1, Limit: 2}).Then(Match("p.author_id = ?", "a2"))
	total, err := p.Count(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	var rows []*postRow
	require.NoError(t, p.Run(ctx, db, &rows))
	assert.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "bob", r.Author.Name)
	}
}

func TestRunOne(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)
	ctx := context.Background()

	var row postRow
	found, err := postPipeline("", Page{}).Then(Match("p.id = ?", "p05")).RunOne(ctx, db, &row)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "post 05", row.Title)

	var missing postRow
	found, err = postPipeline("", Page{}).Then(Match("p.id = ?", "p99")).RunOne(ctx, db, &missing)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNoProjection(t *testing.T) {
	db := openTestDB(t)
	var rows []*postRow
	err := New("posts AS p", Match("1 = 1")).Run(context.Background(), db, &rows)
	assert.ErrorIs(t, err, ErrNoProjection)
}

func TestPage(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Page{Number: 3, Limit: 10}.Offset())
	assert.Equal(t, int64(0), Page{Number: 1, Limit: 10}.TotalPages(0))
	assert.Equal(t, int64(1), Page{Number: 1, Limit: 10}.TotalPages(10))
	assert.Equal(t, int64(2), Page{Number: 1, Limit: 10}.TotalPages(11))
}

func TestSortFieldsLookup(t *testing.T) {
	fields := SortFields{"score": "p.score"}
	col, err := fields.Lookup("score")
	require.NoError(t, err)
	assert.Equal(t, "p.score", col)

	_, err = fields.Lookup("secret")
	assert.Error(t, err)
}
