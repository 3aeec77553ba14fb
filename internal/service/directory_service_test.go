package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/reschool/internal/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryService_Browse(t *testing.T) {
	api := loggedIn()
	api.GroupsTreeResp = []byte(`[{"orgName":"School 5","groups":[{"groupName":"10A"}]}]`)
	svc := NewDirectoryService(api)

	nav, err := svc.Browse(context.Background())
	require.NoError(t, err)
	view := nav.CurrentView()
	require.Len(t, view, 1)
	assert.Equal(t, directory.KindOrganization, view[0].Node.Kind)
	assert.Equal(t, 1, api.CallCount("GroupsTree"))
}

func TestDirectoryService_Browse_Malformed(t *testing.T) {
	api := loggedIn()
	api.GroupsTreeResp = []byte(`<html>`)
	svc := NewDirectoryService(api)

	_, err := svc.Browse(context.Background())
	assert.ErrorIs(t, err, directory.ErrMalformedInput)
}
