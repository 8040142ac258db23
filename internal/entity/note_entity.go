package entity

// Note is the only resource the service manages. Extra holds any
// additional fields merged in through updates.
type Note struct {
	Id    int64
	Title string
	Body  string
	Extra map[string]interface{}
}

// NotePatch carries the fields supplied on update. Nil fields are left unchanged.
type NotePatch struct {
	Title *string
	Body  *string
	Extra map[string]interface{}
}

func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Body == nil && len(p.Extra) == 0
}

// Apply merges the patch into the note. Id is never touched.
func (n *Note) Apply(p NotePatch) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Body != nil {
		n.Body = *p.Body
	}
	if len(p.Extra) == 0 {
		return
	}
	if n.Extra == nil {
		n.Extra = make(map[string]interface{}, len(p.Extra))
	}
	for k, v := range p.Extra {
		n.Extra[k] = copyValue(v)
	}
}

// Clone returns a deep copy so callers never share state with the store.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	c := &Note{
		Id:    n.Id,
		Title: n.Title,
		Body:  n.Body,
	}
	if n.Extra != nil {
		c.Extra = copyValue(n.Extra).(map[string]interface{})
	}
	return c
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[k] = copyValue(val)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, val := range t {
			s[i] = copyValue(val)
		}
		return s
	default:
		return v
	}
}
