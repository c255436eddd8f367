package entity

type PaginationInput struct {
	Limit  int
	Offset int
}

func NewPaginationInput(limit int, offset int) *PaginationInput {
	return &PaginationInput{
		Limit:  limit,
		Offset: offset,
	}
}

// Window returns the limit/offset pair in the form the sql builder expects.
func (p *PaginationInput) Window() (limit, offset uint64) {
	return uint64(p.Limit), uint64(p.Offset)
}
