package entities

// Preference is the key of one user toggle.
type Preference string

const (
	PrefCommandPanelStarredProjects Preference = "command_panel_starred_projects"
	PrefCommandPanelMovePlaces      Preference = "command_panel_move_places"

	PrefTodoRenderProjectLogos Preference = "todo_render_project_logos"
	PrefTodoRenderLabels       Preference = "todo_render_labels"

	PrefGeneralScopedLabelsDropdown Preference = "general_scoped_labels_dropdown"
	PrefGeneralPersistentFilters    Preference = "general_persistent_filters"

	PrefIssueStarBoards                       Preference = "issue_star_boards"
	PrefIssueHighlightMine                    Preference = "issue_highlight_mine"
	PrefIssueShowMyUnresolvedThreads          Preference = "issue_show_my_unresolved_threads"
	PrefIssueShowMyUnresolvedThreadsResponses Preference = "issue_show_my_unresolved_threads_with_responses"
	PrefIssueUseThreadsByDefault              Preference = "issue_use_threads_by_default"
	PrefIssueRenderProjectLogo                Preference = "issue_render_project_logo"
	PrefIssueValidateMissingEpic              Preference = "issue_validate_missing_epic"
	PrefIssueValidateMissingMilestone         Preference = "issue_validate_missing_milestone"
	PrefIssueValidateMissingIteration         Preference = "issue_validate_missing_iteration"
	PrefIssueValidateMissingWeight            Preference = "issue_validate_missing_weight"
	PrefIssueValidateUnresolvedThreads        Preference = "issue_validate_unresolved_threads"
	PrefIssueRequiredScopedLabels             Preference = "issue_required_scoped_labels"
	PrefIssueBoardsRenameProject              Preference = "issue_boards_rename_project"

	PrefMRHighlightMine                    Preference = "mr_highlight_mine"
	PrefMRHighlightMyApprovals             Preference = "mr_highlight_my_approvals"
	PrefMRShowAssignYourself               Preference = "mr_show_assign_yourself"
	PrefMRShowMyUnresolvedThreads          Preference = "mr_show_my_unresolved_threads"
	PrefMRShowMyUnresolvedThreadsResponses Preference = "mr_show_my_unresolved_threads_with_responses"
	PrefMRUseThreadsByDefault              Preference = "mr_use_threads_by_default"
	PrefMRRenderProjectLogo                Preference = "mr_render_project_logo"
	PrefMRDimDraft                         Preference = "mr_dim_draft"
	PrefMRHotkeyViewed                     Preference = "mr_hotkey_viewed"
	PrefMRHotkeyViewedNext                 Preference = "mr_hotkey_viewed_next"
)

// StorageKeys is the persisted layout. Every key lives under one namespace so
// it never collides with the host's own entries.
type StorageKeys struct {
	Namespace string
}

// NewStorageKeys builds the layout from the configured namespace.
func NewStorageKeys(settings *Settings) StorageKeys {
	return StorageKeys{Namespace: settings.Storage.Namespace}
}

func (k StorageKeys) Preferences() string       { return k.Namespace }
func (k StorageKeys) Projects() string          { return k.Namespace + "/projects" }
func (k StorageKeys) ProjectLabels() string     { return k.Namespace + "/project-labels" }
func (k StorageKeys) PersistentFilters() string { return k.Namespace + "/persistent-filters" }
