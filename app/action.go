package app

// Action is the closed set of user intents the keybinding table resolves to
type Action uint8

const (
	ActNone Action = iota

	// Navigation
	ActMoveUp
	ActMoveDown
	ActPageUp
	ActPageDown
	ActTop
	ActBottom
	ActNextPanel
	ActPrevPanel
	ActFocusStatus
	ActFocusBranches
	ActFocusCommits
	ActFocusMain
	ActFocusStash
	ActFocusTags

	// Global
	ActQuit
	ActToggleHelp
	ActCancel
	ActSearch
	ActCommand
	ActPush
	ActPull
	ActFetch

	// Status panel
	ActStageToggle
	ActStageAll
	ActUnstageAll
	ActDiscard
	ActCommit

	// Branches panel
	ActCheckout
	ActCreateBranch
	ActDeleteBranch
	ActForceDeleteBranch
	ActMerge
	ActRebase
	ActToggleRemotes

	// Commits panel
	ActDetails
	ActNextResult
	ActPrevResult
	ActCherryPick
	ActRevert
	ActCopyHash

	// Main (diff) panel
	ActStageHunk
	ActNextHunk
	ActPrevHunk
	ActNextFile
	ActPrevFile

	// Stash panel
	ActStashSave
	ActStashPop
	ActStashDrop

	// Tags panel
	ActCreateTag
	ActDeleteTag
	ActPushTag
)

var actionNames = map[string]Action{
	"move_up":       ActMoveUp,
	"move_down":     ActMoveDown,
	"page_up":       ActPageUp,
	"page_down":     ActPageDown,
	"top":           ActTop,
	"bottom":        ActBottom,
	"next_panel":    ActNextPanel,
	"prev_panel":    ActPrevPanel,
	"quit":          ActQuit,
	"help":          ActToggleHelp,
	"cancel":        ActCancel,
	"search":        ActSearch,
	"command":       ActCommand,
	"push":          ActPush,
	"pull":          ActPull,
	"fetch":         ActFetch,
	"stage":         ActStageToggle,
	"stage_all":     ActStageAll,
	"unstage_all":   ActUnstageAll,
	"discard":       ActDiscard,
	"commit":        ActCommit,
	"checkout":      ActCheckout,
	"create_branch": ActCreateBranch,
	"delete_branch": ActDeleteBranch,
	"force_delete":  ActForceDeleteBranch,
	"merge":         ActMerge,
	"rebase":        ActRebase,
	"remotes":       ActToggleRemotes,
	"details":       ActDetails,
	"cherry_pick":   ActCherryPick,
	"revert":        ActRevert,
	"copy_hash":     ActCopyHash,
	"stage_hunk":    ActStageHunk,
	"stash_save":    ActStashSave,
	"stash_pop":     ActStashPop,
	"stash_drop":    ActStashDrop,
	"create_tag":    ActCreateTag,
	"delete_tag":    ActDeleteTag,
	"push_tag":      ActPushTag,
}
