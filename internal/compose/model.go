package compose

type (
	// Model is the docker compose document the generator emits.
	Model struct {
		Services map[string]Service     `yaml:"services"`
		Volumes  map[string]*VolumeSpec `yaml:"volumes,omitempty"`
	}

	Service struct {
		Image         string   `yaml:"image"`
		ContainerName string   `yaml:"container_name,omitempty"`
		Restart       string   `yaml:"restart,omitempty"`
		Entrypoint    []string `yaml:"entrypoint,omitempty"`
		Command       []string `yaml:"command,omitempty"`
		Ports         []string `yaml:"ports,omitempty"`
		Volumes       []string `yaml:"volumes,omitempty"`
		DependsOn     []string `yaml:"depends_on,omitempty"`
	}

	// VolumeSpec is always empty; compose treats a nil spec as a plain
	// named volume.
	VolumeSpec struct{}
)
