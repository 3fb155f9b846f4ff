// SPDX-License-Identifier: MPL-2.0

package projectdef

const (
	// KeyBaseDir is the project base directory; never inherited by children.
	KeyBaseDir = "sonar.projectBaseDir"
	// KeyConfigFile points a module at an external property file.
	KeyConfigFile = "sonar.projectConfigFile"
	// KeyProjectKey is the unique project key.
	KeyProjectKey = "sonar.projectKey"
	// KeyProjectName is the display name.
	KeyProjectName = "sonar.projectName"
	// KeyDescription is the project description; never inherited by children.
	KeyDescription = "sonar.projectDescription"
	// KeyVersion is the project version.
	KeyVersion = "sonar.projectVersion"
	// KeyModules lists child module ids; never inherited by children.
	KeyModules = "sonar.modules"

	// KeySources lists source directories.
	KeySources = "sonar.sources"
	// KeyTests lists test directories.
	KeyTests = "sonar.tests"
	// KeyBinaries lists binary directories.
	KeyBinaries = "sonar.binaries"
	// KeyLibraries lists library wildcard patterns.
	KeyLibraries = "sonar.libraries"

	// KeyWorkDir overrides the scratch directory, absolute or relative to the base directory.
	KeyWorkDir = "sonar.working.directory"
	// DefaultWorkDir is the scratch directory name used under the base directory.
	DefaultWorkDir = ".sonar"
)

var (
	// rootMandatory is checked on every built node, after the parent merge for children.
	rootMandatory = []string{KeyBaseDir, KeyProjectKey, KeyProjectName, KeyVersion, KeySources}

	// childMandatory is checked on a child's own properties before the parent merge.
	childMandatory = []string{KeyProjectKey, KeyProjectName}

	// nonInherited never flow from a parent into its children.
	nonInherited = map[string]struct{}{
		KeyBaseDir:     {},
		KeyModules:     {},
		KeyDescription: {},
	}

	// leafOnly are stripped from aggregators.
	leafOnly = []string{KeySources, KeyTests, KeyBinaries, KeyLibraries}
)
