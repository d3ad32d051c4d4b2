package storage

import (
	"sort"
	"sync"
	"time"

	"yatube/internal/models"
)

// MemoryStore is an in-process Store used by tests and local runs without a
// database. Referential actions are applied by hand: deleting a user
// cascades to posts, comments and follow edges; deleting a group nulls the
// group reference on its posts; deleting a post cascades to its comments.
type MemoryStore struct {
	mu sync.RWMutex

	users    map[int]models.User
	groups   map[int]models.Group
	posts    map[int]models.Post
	comments map[int]models.Comment
	follows  map[int]models.Follow

	nextID map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[int]models.User),
		groups:   make(map[int]models.Group),
		posts:    make(map[int]models.Post),
		comments: make(map[int]models.Comment),
		follows:  make(map[int]models.Follow),
		nextID:   make(map[string]int),
	}
}

func (s *MemoryStore) seq(table string) int {
	s.nextID[table]++
	return s.nextID[table]
}

func (s *MemoryStore) CreateUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.seq("users")
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) GetUserByID(id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStore) GetUserByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteUser(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	// ON DELETE CASCADE: posts, then the posts' comments.
	for postID, post := range s.posts {
		if post.AuthorID != nil && *post.AuthorID == id {
			delete(s.posts, postID)
			for commentID, comment := range s.comments {
				if comment.PostID == postID {
					delete(s.comments, commentID)
				}
			}
		}
	}
	for commentID, comment := range s.comments {
		if comment.AuthorID == id {
			delete(s.comments, commentID)
		}
	}
	for followID, follow := range s.follows {
		if follow.UserID == id || follow.AuthorID == id {
			delete(s.follows, followID)
		}
	}
	return nil
}

func (s *MemoryStore) CreateGroup(g *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = s.seq("groups")
	s.groups[g.ID] = *g
	return nil
}

func (s *MemoryStore) GetGroupByID(id int) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group, ok := s.groups[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &group, nil
}

func (s *MemoryStore) GetGroupBySlug(slug string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, group := range s.groups {
		if group.Slug == slug {
			g := group
			return &g, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListGroups() ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := make([]models.Group, 0, len(s.groups))
	for _, group := range s.groups {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}

func (s *MemoryStore) DeleteGroup(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[id]; !ok {
		return ErrNotFound
	}
	delete(s.groups, id)
	// ON DELETE SET NULL: posts keep living without a group.
	for postID, post := range s.posts {
		if post.GroupID != nil && *post.GroupID == id {
			post.GroupID = nil
			post.Group = nil
			s.posts[postID] = post
		}
	}
	return nil
}

func (s *MemoryStore) CreatePost(p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.seq("posts")
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	s.posts[p.ID] = *p
	*p = s.hydratePost(s.posts[p.ID])
	return nil
}

func (s *MemoryStore) hydratePost(post models.Post) models.Post {
	if post.AuthorID != nil {
		if author, ok := s.users[*post.AuthorID]; ok {
			post.Author = &author
		}
	}
	if post.GroupID != nil {
		if group, ok := s.groups[*post.GroupID]; ok {
			post.Group = &group
		}
	}
	return post
}

func (s *MemoryStore) GetPostByID(id int) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	hydrated := s.hydratePost(post)
	return &hydrated, nil
}

func (s *MemoryStore) UpdatePost(p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.posts[p.ID]
	if !ok {
		return ErrNotFound
	}
	// id, created_at and author are immutable.
	stored.Text = p.Text
	stored.GroupID = p.GroupID
	stored.Image = p.Image
	stored.Group = nil
	s.posts[p.ID] = stored
	*p = s.hydratePost(stored)
	return nil
}

func (s *MemoryStore) matchPost(post models.Post, f PostFilter) bool {
	if f.GroupID != nil && (post.GroupID == nil || *post.GroupID != *f.GroupID) {
		return false
	}
	if f.AuthorID != nil && (post.AuthorID == nil || *post.AuthorID != *f.AuthorID) {
		return false
	}
	if f.FollowedBy != nil {
		if post.AuthorID == nil {
			return false
		}
		followed := false
		for _, follow := range s.follows {
			if follow.UserID == *f.FollowedBy && follow.AuthorID == *post.AuthorID {
				followed = true
				break
			}
		}
		if !followed {
			return false
		}
	}
	return true
}

func (s *MemoryStore) filteredPosts(f PostFilter) []models.Post {
	var posts []models.Post
	for _, post := range s.posts {
		if s.matchPost(post, f) {
			posts = append(posts, s.hydratePost(post))
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts
}

func (s *MemoryStore) CountPosts(f PostFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.filteredPosts(f)), nil
}

func (s *MemoryStore) ListPosts(f PostFilter, limit, offset int) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := s.filteredPosts(f)
	if offset >= len(posts) {
		return []models.Post{}, nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end], nil
}

func (s *MemoryStore) CreateComment(c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[c.PostID]; !ok {
		return ErrNotFound
	}
	c.ID = s.seq("comments")
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.comments[c.ID] = *c
	if author, ok := s.users[c.AuthorID]; ok {
		c.Author = &author
	}
	return nil
}

func (s *MemoryStore) ListComments(postID int) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comments := []models.Comment{}
	for _, comment := range s.comments {
		if comment.PostID == postID {
			if author, ok := s.users[comment.AuthorID]; ok {
				comment.Author = &author
			}
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
	return comments, nil
}

func (s *MemoryStore) EnsureFollow(userID, authorID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, follow := range s.follows {
		if follow.UserID == userID && follow.AuthorID == authorID {
			return nil
		}
	}
	id := s.seq("follows")
	s.follows[id] = models.Follow{ID: id, UserID: userID, AuthorID: authorID}
	return nil
}

func (s *MemoryStore) DeleteFollow(userID, authorID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, follow := range s.follows {
		if follow.UserID == userID && follow.AuthorID == authorID {
			delete(s.follows, id)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) IsFollowing(userID, authorID int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, follow := range s.follows {
		if follow.UserID == userID && follow.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}
