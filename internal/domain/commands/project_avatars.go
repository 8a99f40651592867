package commands

import (
	"context"
	"fmt"
	"io"
	"sync"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/repositories"
)

const avatarLookupLimit = 8

// ProjectAvatars resolves the avatar of every project listed on a page.
type ProjectAvatars interface {
	// Resolve maps project paths to an avatar URL, or to the initial used for
	// the placeholder when the project has no avatar.
	Resolve(ctx context.Context, document io.Reader, pageURL string) (map[string]string, error)
}

// ProjectAvatarsCommand runs only on pages where a render-logo toggle applies.
type ProjectAvatarsCommand struct {
	extractor   repositories.ProjectPathExtractor
	cache       EntityCache
	preferences Preferences
}

// NewProjectAvatarsCommand creates the avatar resolver.
func NewProjectAvatarsCommand(
	extractor repositories.ProjectPathExtractor,
	cache EntityCache,
	preferences Preferences,
) *ProjectAvatarsCommand {
	return &ProjectAvatarsCommand{extractor: extractor, cache: cache, preferences: preferences}
}

func (it *ProjectAvatarsCommand) Resolve(
	ctx context.Context,
	document io.Reader,
	pageURL string,
) (map[string]string, error) {
	location, err := entities.ParseLocation(pageURL)
	if err != nil {
		return nil, err
	}

	avatars := map[string]string{}
	if !it.enabledOn(ctx, entities.DetectPage(location.Pathname).Flags) {
		logger.Debugf("Avatars are disabled on %s", location.Pathname)
		return avatars, nil
	}

	paths, err := it.extractor.Extract(document, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract project paths: %w", err)
	}

	var mu sync.Mutex
	group := new(errgroup.Group)
	group.SetLimit(avatarLookupLimit)
	for _, path := range paths {
		group.Go(func() error {
			avatar := avatarOf(it.cache.GetProject(ctx, path))
			if avatar == "" {
				return nil
			}
			mu.Lock()
			avatars[path] = avatar
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	return avatars, nil
}

func (it *ProjectAvatarsCommand) enabledOn(ctx context.Context, flags entities.CategoryFlags) bool {
	if flags.IsTodoPage && it.preferences.GetBool(ctx, entities.PrefTodoRenderProjectLogos, true) {
		return true
	}
	if (flags.IsIssuePage || flags.IsBoardPage) &&
		it.preferences.GetBool(ctx, entities.PrefIssueRenderProjectLogo, true) {
		return true
	}
	return flags.IsMergeRequestPage && (flags.IsGroup || flags.IsProject) &&
		it.preferences.GetBool(ctx, entities.PrefMRRenderProjectLogo, true)
}

func avatarOf(project *entities.Project) string {
	if project == nil {
		return ""
	}
	if project.AvatarURL != "" {
		return project.AvatarURL
	}
	for _, r := range project.Name {
		return string(r)
	}
	return ""
}
