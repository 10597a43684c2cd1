package cache

// MemoryStore is a map-backed Store used in tests and anywhere persistence is
// not wanted.
type MemoryStore struct {
	pages map[string]*Page
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pages: make(map[string]*Page)}
}

func (s *MemoryStore) Get(url string) (*Page, error) {
	return s.pages[url], nil
}

func (s *MemoryStore) Put(url string, page *Page) error {
	s.pages[url] = page
	return nil
}
