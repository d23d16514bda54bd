package git

import (
	"strings"
)

// Tag is one entry of the tags panel
type Tag struct {
	Name string
}

// Tags lists tags, newest first by creation date
func (r *Repo) Tags() ([]Tag, error) {
	out, err := r.runner.Run("tag", "--list", "--sort=-creatordate")
	if err != nil {
		return nil, err
	}
	var tags []Tag
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		tags = append(tags, Tag{Name: line})
	}
	return tags, nil
}

// CreateTag creates a lightweight tag at ref (HEAD when ref is empty)
func (r *Repo) CreateTag(name, ref string) error {
	if err := validateRefName(name); err != nil {
		return err
	}
	args := []string{"tag", name}
	if ref != "" {
		args = append(args, ref)
	}
	_, err := r.runner.Run(args...)
	return err
}

// DeleteTag removes a local tag
func (r *Repo) DeleteTag(name string) error {
	_, err := r.runner.Run("tag", "--delete", name)
	return err
}

// PushTag publishes one tag to the remote
func (r *Repo) PushTag(remote, name string) error {
	if remote == "" {
		remote = "origin"
	}
	_, err := r.runner.Run("push", remote, "refs/tags/"+name)
	return err
}
