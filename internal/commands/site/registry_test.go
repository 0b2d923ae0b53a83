package sitecmd

import (
	"context"
	"testing"

	"github.com/goliatone/go-command/dispatcher"
)

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterSiteCommands(t *testing.T) {
	reg := &recordingRegistry{}

	set, err := RegisterSiteCommands(reg, newRepository(t), nil)
	if err != nil {
		t.Fatalf("RegisterSiteCommands: %v", err)
	}
	if len(reg.handlers) != 6 {
		t.Fatalf("expected 6 registered handlers, got %d", len(reg.handlers))
	}
	if set.Import == nil || set.ImportFiles == nil {
		t.Fatalf("expected handler set to be populated: %+v", set)
	}
}

func TestRegisterSiteCommandsRequiresService(t *testing.T) {
	if _, err := RegisterSiteCommands(nil, nil, nil); err == nil {
		t.Fatal("expected error for nil service")
	}
}

func TestHandlerSetDispatch(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)
	set, err := RegisterSiteCommands(nil, repo, nil)
	if err != nil {
		t.Fatalf("RegisterSiteCommands: %v", err)
	}

	unsubscribe := set.Subscribe()
	t.Cleanup(unsubscribe)

	first := repo.LoadArticles(ctx).Articles[0]
	if err := dispatcher.Dispatch(ctx, DeleteArticleCommand{ID: first.ID}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if _, ok := repo.GetArticle(ctx, first.ID); ok {
		t.Fatal("expected dispatched delete to remove the article")
	}
}
