package runtime

import (
	"fmt"
	"sort"

	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/rileyhilliard/ecsctl/internal/util"
)

// ContainerNameLabel is the label the ECS agent puts on every container it
// starts, holding the container name from the task definition.
const ContainerNameLabel = "com.amazonaws.ecs.container-name"

// FindContainer returns the id of the first container whose name label equals
// name exactly. No case folding, no prefix matching.
func FindContainer(containers []Container, name string) (string, error) {
	for _, c := range containers {
		if v, ok := c.Labels[ContainerNameLabel]; ok && v == name {
			return c.ID, nil
		}
	}

	return "", errors.New(errors.ErrContainerNotFound,
		fmt.Sprintf("No running container labeled '%s'", name),
		notFoundSuggestion(containers, name))
}

func notFoundSuggestion(containers []Container, name string) string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range containers {
		if v := c.Labels[ContainerNameLabel]; v != "" && !seen[v] {
			seen[v] = true
			names = append(names, v)
		}
	}
	sort.Strings(names)

	if similar := util.SuggestSimilar(name, names, 3); len(similar) > 0 {
		return fmt.Sprintf("Did you mean '%s'? Task containers on this host: %s", similar[0], util.JoinOrNone(names))
	}
	return fmt.Sprintf("Task containers on this host: %s. The container may have exited; check --container.", util.JoinOrNone(names))
}
