// Package cproject reads STM32CubeIDE (Eclipse CDT) project metadata.
package cproject

import (
	"path/filepath"

	"github.com/arthur-debert/stmdeploy/pkg/errors"
	"github.com/arthur-debert/stmdeploy/pkg/types"
	"github.com/beevik/etree"
	"github.com/spf13/afero"
)

// Metadata file names found at the root of an Eclipse project
const (
	ProjectFile  = ".project"
	CProjectFile = ".cproject"
)

const settingsModule = "org.eclipse.cdt.core.settings"

// Project is the metadata of a CubeIDE project
type Project struct {
	Name    string
	Configs []string
}

// Read parses the project metadata found in dir
func Read(fsys afero.Fs, dir string) (*Project, error) {
	doc, err := load(fsys, filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}
	p := &Project{}
	if name := doc.FindElement("/projectDescription/name"); name != nil {
		p.Name = name.Text()
	}
	if p.Name == "" {
		return nil, errors.Newf(errors.ErrConfigParse, "no project name in %s", filepath.Join(dir, ProjectFile))
	}

	cdoc, err := load(fsys, filepath.Join(dir, CProjectFile))
	if err != nil {
		return nil, err
	}
	for _, conf := range cdoc.FindElements("//cconfiguration") {
		for _, module := range conf.SelectElements("storageModule") {
			if module.SelectAttrValue("moduleId", "") != settingsModule {
				continue
			}
			if name := module.SelectAttrValue("name", ""); name != "" {
				p.Configs = append(p.Configs, name)
			}
			break
		}
	}
	return p, nil
}

func load(fsys afero.Fs, path string) (*etree.Document, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound, "cannot read %s", path)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid project file %s", path)
	}
	return doc, nil
}

// Complete fills the empty CProjectName and CProjectConfig of conf from the
// project metadata at CProjectLocation. The first build configuration of
// the project is used.
func Complete(fsys afero.Fs, conf *types.BuildConfig) error {
	if conf.CProjectName != "" && conf.CProjectConfig != "" {
		return nil
	}
	if conf.CProjectLocation == "" {
		return errors.Newf(errors.ErrConfigValid, "config %q: cproject_location is required", conf.Name)
	}
	p, err := Read(fsys, conf.CProjectLocation)
	if err != nil {
		return err
	}
	if conf.CProjectName == "" {
		conf.CProjectName = p.Name
	}
	if conf.CProjectConfig == "" {
		if len(p.Configs) == 0 {
			return errors.Newf(errors.ErrConfigValid, "project %q declares no build configuration", p.Name)
		}
		conf.CProjectConfig = p.Configs[0]
	}
	return nil
}
