// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	MissingPropertyId Id = iota + 1
	InvalidBaseDirId
	ConfigFileNotFoundId
	ConfigFileReadId
	MissingSourceDirectoryId
	NoMatchingLibraryId
	InvalidModuleId
	ProjectFileNotFoundId
	ConfigLoadFailedId
	EngineDownloadFailedId
	NoDumpFileId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation about the issue type
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

const analysisParamsDoc HttpLink = "https://docs.sonarsource.com/sonarqube-server/analyzing-source-code/analysis-parameters"

var (
	render = glamour.Render

	missingPropertyIssue = &Issue{
		id: MissingPropertyId,
		mdMsg: `
# Mandatory properties are missing!

Every project needs a key, a name, a version, a base directory and its source
directories. Modules need at least their own key and name; everything else is
inherited from the parent project.

## Things you can try:
- Add the missing keys to your ` + "`sonar-project.properties`" + `:
~~~properties
sonar.projectKey=my:project
sonar.projectName=My Project
sonar.projectVersion=1.0
sonar.sources=src
~~~

- Or pass them on the command line:
~~~
$ scanrunner project validate -D sonar.projectVersion=1.0
~~~

- For a module, prefix the key with the module id:
~~~properties
sonar.modules=core
core.sonar.projectKey=my:project:core
core.sonar.projectName=Core
~~~`,
		docLinks: []HttpLink{analysisParamsDoc},
	}

	invalidBaseDirIssue = &Issue{
		id: InvalidBaseDirId,
		mdMsg: `
# Base directory does not exist!

A module's base directory defaults to a sub-directory named after the module id,
next to the parent project's base directory.

## Things you can try:
- Create the directory, or point the module elsewhere:
~~~properties
core.sonar.projectBaseDir=modules/core
~~~

- Relative paths resolve against the parent's base directory (or the module's
  properties file directory when ` + "`sonar.projectConfigFile`" + ` is used)`,
	}

	configFileNotFoundIssue = &Issue{
		id: ConfigFileNotFoundId,
		mdMsg: `
# Module properties file not found!

A module declared ` + "`sonar.projectConfigFile`" + ` but the file does not exist.

## Things you can try:
- Check the path, which is relative to the parent project's base directory
- Both ` + "`.properties`" + ` and ` + "`.toml`" + ` files are accepted`,
	}

	configFileReadIssue = &Issue{
		id: ConfigFileReadId,
		mdMsg: `
# Failed to read a properties file!

The file exists but could not be parsed.

## Things you can try:
- Check the file encoding (UTF-8 is expected)
- For TOML files, validate the syntax:
~~~toml
[sonar]
projectKey = "my:project:core"
projectName = "Core"
~~~`,
	}

	missingSourceDirectoryIssue = &Issue{
		id: MissingSourceDirectoryId,
		mdMsg: `
# Source directory not found!

Every entry of ` + "`sonar.sources`" + ` must be an existing directory, relative to
the module's base directory.

## Things you can try:
- Fix the path or create the directory
- Remember that modules inherit ` + "`sonar.sources`" + ` from their parent unless they
  set their own`,
	}

	noMatchingLibraryIssue = &Issue{
		id: NoMatchingLibraryId,
		mdMsg: `
# No library matches the pattern!

Each ` + "`sonar.libraries`" + ` entry must match at least one file. Only the file
name part may contain the ` + "`*`" + ` and ` + "`?`" + ` wildcards.

## Things you can try:
- Check that the libraries have been built
- List the directory to see what the pattern should match:
~~~
$ ls lib/*.jar
~~~`,
	}

	invalidModuleIssue = &Issue{
		id: InvalidModuleId,
		mdMsg: `
# Invalid module declaration!

Module ids are used both as property prefixes and as directory names. They must
be non-empty, unique within one ` + "`sonar.modules`" + ` list, and must not contain a
path separator.

## Things you can try:
- Use a plain id and set the directory separately:
~~~properties
sonar.modules=core
core.sonar.projectBaseDir=modules/core
~~~`,
	}

	projectFileNotFoundIssue = &Issue{
		id: ProjectFileNotFoundId,
		mdMsg: `
# Project properties file not found!

The file given with ` + "`--project-file`" + ` does not exist.

## Things you can try:
- Check the path
- Omit the flag to use ` + "`sonar-project.properties`" + ` from the current directory`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The scanrunner configuration file could not be loaded or does not match its schema.

## Things you can try:
- Check the configuration file syntax:
~~~
$ scanrunner config show
~~~

- Write a fresh default configuration:
~~~
$ scanrunner config init --force
~~~`,
	}

	engineDownloadFailedIssue = &Issue{
		id: EngineDownloadFailedId,
		mdMsg: `
# Failed to download the analysis engine!

The engine files could not be retrieved from the server or did not match their
published digest.

## Things you can try:
- Check ` + "`server_url`" + ` in your configuration and that the server is reachable
- Remove the file cache under your ` + "`user_home`" + ` and retry:
~~~
$ scanrunner engine fetch
~~~`,
	}

	noDumpFileIssue = &Issue{
		id: NoDumpFileId,
		mdMsg: `
# No analysis output configured!

The simulated engine writes the resolved properties to a file.

## Things you can try:
- Pass a destination:
~~~
$ scanrunner analyze --dump-to analysis.properties
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Common causes:
- Writing the file cache or working directory in a protected location
- Reading project files owned by another user

## Things you can try:
- Check file/directory permissions
- Set ` + "`user_home`" + ` in your configuration to a directory you own`,
	}

	issues = map[Id]*Issue{
		missingPropertyIssue.Id():        missingPropertyIssue,
		invalidBaseDirIssue.Id():         invalidBaseDirIssue,
		configFileNotFoundIssue.Id():     configFileNotFoundIssue,
		configFileReadIssue.Id():         configFileReadIssue,
		missingSourceDirectoryIssue.Id(): missingSourceDirectoryIssue,
		noMatchingLibraryIssue.Id():      noMatchingLibraryIssue,
		invalidModuleIssue.Id():          invalidModuleIssue,
		projectFileNotFoundIssue.Id():    projectFileNotFoundIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		engineDownloadFailedIssue.Id():   engineDownloadFailedIssue,
		noDumpFileIssue.Id():             noDumpFileIssue,
		permissionDeniedIssue.Id():       permissionDeniedIssue,
	}
)

// Values returns every catalogued issue ordered by id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
