// Package markdown loads selection fixtures: markup files whose frontmatter
// names a selection and the snapshot it should render as. Fixture bodies may be
// written in HTML or in Markdown, which goldmark renders before use.
package markdown
