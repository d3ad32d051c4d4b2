package storage

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"yatube/internal/models"
)

// PostgresStore implements Store over gorm.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *PostgresStore) CreateUser(u *models.User) error {
	return s.db.Create(u).Error
}

func (s *PostgresStore) GetUserByID(id int) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *PostgresStore) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// DeleteUser removes the user row; posts, comments and follow edges go with
// it through the ON DELETE CASCADE actions in the schema.
func (s *PostgresStore) DeleteUser(id int) error {
	res := s.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CreateGroup(g *models.Group) error {
	return s.db.Create(g).Error
}

func (s *PostgresStore) GetGroupByID(id int) (*models.Group, error) {
	var group models.Group
	if err := s.db.First(&group, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

func (s *PostgresStore) GetGroupBySlug(slug string) (*models.Group, error) {
	var group models.Group
	if err := s.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

func (s *PostgresStore) ListGroups() ([]models.Group, error) {
	var groups []models.Group
	if err := s.db.Order("title").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// DeleteGroup removes the group; the ON DELETE SET NULL action clears the
// group reference on its posts without deleting them.
func (s *PostgresStore) DeleteGroup(id int) error {
	res := s.db.Delete(&models.Group{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CreatePost(p *models.Post) error {
	if err := s.db.Create(p).Error; err != nil {
		return err
	}
	return s.db.Preload("Author").Preload("Group").First(p, p.ID).Error
}

func (s *PostgresStore) GetPostByID(id int) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

func (s *PostgresStore) UpdatePost(p *models.Post) error {
	// Save would also touch created_at and author; restrict the update to
	// the mutable columns.
	return s.db.Model(&models.Post{ID: p.ID}).
		Select("text", "group_id", "image").
		Updates(map[string]interface{}{
			"text":     p.Text,
			"group_id": p.GroupID,
			"image":    p.Image,
		}).Error
}

func (s *PostgresStore) postQuery(f PostFilter) *gorm.DB {
	q := s.db.Model(&models.Post{})
	if f.GroupID != nil {
		q = q.Where("group_id = ?", *f.GroupID)
	}
	if f.AuthorID != nil {
		q = q.Where("author_id = ?", *f.AuthorID)
	}
	if f.FollowedBy != nil {
		sub := s.db.Model(&models.Follow{}).
			Select("author_id").
			Where("user_id = ?", *f.FollowedBy)
		q = q.Where("author_id IN (?)", sub)
	}
	return q
}

func (s *PostgresStore) CountPosts(f PostFilter) (int, error) {
	var count int64
	if err := s.postQuery(f).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *PostgresStore) ListPosts(f PostFilter, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := s.postQuery(f).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		log.Errorf("listing posts: %v", err)
		return nil, err
	}
	return posts, nil
}

func (s *PostgresStore) CreateComment(c *models.Comment) error {
	if err := s.db.Create(c).Error; err != nil {
		return err
	}
	return s.db.Preload("Author").First(c, c.ID).Error
}

func (s *PostgresStore) ListComments(postID int) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *PostgresStore) EnsureFollow(userID, authorID int) error {
	follow := models.Follow{UserID: userID, AuthorID: authorID}
	return s.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		FirstOrCreate(&follow).Error
}

func (s *PostgresStore) DeleteFollow(userID, authorID int) error {
	res := s.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) IsFollowing(userID, authorID int) (bool, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}
