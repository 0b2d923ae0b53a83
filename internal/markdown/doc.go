// Package markdown renders full markdown for the admin preview pane and loads
// articles from markdown files carrying YAML front matter.
package markdown
