package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/reschool/internal/directory"
	"github.com/alexanderramin/reschool/internal/eschool"
)

type directoryService struct {
	api      eschool.API
	observer UseCaseObserver
}

func NewDirectoryService(api eschool.API, observers ...UseCaseObserver) DirectoryService {
	return &directoryService{api: api, observer: useCaseObserverOrNoop(observers)}
}

// Browse fetches the directory once; navigation is local after that.
func (s *directoryService) Browse(ctx context.Context) (nav *directory.Navigator, err error) {
	fields := map[string]any{}
	done := track(ctx, s.observer, "browse-directory", fields)
	defer func() { done(err) }()

	var raw []byte
	if raw, err = s.api.GroupsTree(ctx); err != nil {
		return nil, err
	}
	fields["bytes"] = len(raw)
	if nav, err = directory.New(raw); err != nil {
		return nil, fmt.Errorf("reading school directory: %w", err)
	}
	return nav, nil
}
