package scan

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

const (
	templateConfig = `# yaml-language-server: $schema=https://raw.githubusercontent.com/actiondep/actiondep/refs/heads/main/json-schema/actiondep.json
# actiondep - https://github.com/actiondep/actiondep
# fork_owners:
#   - myorg
# fork_pattern: ^(?P<org>[^/]+)/actions-(?P<repo>.+)$
# scan_dirs:
#   - .github/actions
# ignore_actions:
#   - name: actions/.*
#     ref: main
`
	filePermission os.FileMode = 0o644
)

func (c *Controller) Init(configFilePath string) error {
	f, err := afero.Exists(c.fs, configFilePath)
	if err != nil {
		return fmt.Errorf("check if a configuration file exists: %w", err)
	}
	if f {
		return nil
	}
	if err := afero.WriteFile(c.fs, configFilePath, []byte(templateConfig), filePermission); err != nil {
		return fmt.Errorf("create a configuration file: %w", err)
	}
	return nil
}
