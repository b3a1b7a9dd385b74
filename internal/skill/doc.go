// Package skill discovers skills in a repository checkout and runs the
// advisory SKILL.md checks behind "agskills validate".
//
// A skill is any directory below the skills root that contains a SKILL.md
// file. Its id is the slash-separated path relative to the root, so nested
// skills such as "cloud/aws-deploy" are found too. Directories whose names
// start with a dot are never searched.
package skill
