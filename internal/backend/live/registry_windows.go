package live

// All WSL bookkeeping lives under the lxss registry key: one subkey per
// distribution, named by its GUID, holding the distribution name and
// the install path of its virtual disk.

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ubuntu/decorate"
	"golang.org/x/sys/windows/registry"
)

const lxssPath = `Software\Microsoft\Windows\CurrentVersion\Lxss`

// registeredGUIDs maps distribution names to their registry GUIDs.
func registeredGUIDs() (distros map[string]uuid.UUID, err error) {
	defer decorate.OnError(&err, "registry: could not enumerate HKEY_CURRENT_USER\\%s", lxssPath)

	k, err := registry.OpenKey(registry.CURRENT_USER, lxssPath, registry.READ)
	if err != nil {
		return nil, err
	}
	defer k.Close()

	info, err := k.Stat()
	if err != nil {
		return nil, err
	}
	subkeys, err := k.ReadSubKeyNames(int(info.SubKeyCount))
	if err != nil {
		return nil, err
	}

	distros = make(map[string]uuid.UUID, len(subkeys))
	for _, subkey := range subkeys {
		id, err := uuid.Parse(subkey)
		if err != nil {
			// Not a distro key (e.g. AppxInstallerCache).
			continue
		}

		name, err := distroField(subkey, "DistributionName")
		if err != nil {
			continue
		}
		distros[name] = id
	}

	return distros, nil
}

// distroBasePath returns the install directory of the named
// distribution, where its ext4.vhdx lives.
func distroBasePath(name string) (path string, err error) {
	defer decorate.OnError(&err, "registry: could not locate install path of %q", name)

	distros, err := registeredGUIDs()
	if err != nil {
		return "", err
	}

	id, ok := distros[name]
	if !ok {
		return "", errNotRegistered(name)
	}

	base, err := distroField("{"+id.String()+"}", "BasePath")
	if err != nil {
		// Some WSL builds store the key without braces.
		base, err = distroField(id.String(), "BasePath")
	}
	if err != nil {
		return "", err
	}

	// BasePath may come prefixed with \\?\.
	return filepath.Clean(trimUNCPrefix(base)), nil
}

func distroField(subkey, field string) (value string, err error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, filepath.Join(lxssPath, subkey), registry.READ)
	if err != nil {
		return "", err
	}
	defer k.Close()

	value, _, err = k.GetStringValue(field)
	return value, err
}
