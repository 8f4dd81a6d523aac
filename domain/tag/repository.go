package tag

import "context"

type Repository interface {
	Save(ctx context.Context, tag *Tag) error
	FindByID(ctx context.Context, id string) (*Tag, error)
	FindByName(ctx context.Context, name string) (*Tag, error)
	FindAll(ctx context.Context) ([]*Tag, error)
}
