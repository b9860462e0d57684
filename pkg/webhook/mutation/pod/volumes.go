package pod

import (
	"github.com/vllm-profiler/env-injector/pkg/config"
	"github.com/vllm-profiler/env-injector/pkg/util/kubeobjects/mounts"
	"github.com/vllm-profiler/env-injector/pkg/util/kubeobjects/volumes"
	"github.com/vllm-profiler/env-injector/pkg/webhook/mutation/pod/patch"
	"gomodules.xyz/jsonpatch/v2"
	corev1 "k8s.io/api/core/v1"
)

// filesPatch adds the files volume to the pod and mounts every configured file into every container, unless already there.
func filesPatch(pod *corev1.Pod, cfg config.Config) []jsonpatch.JsonPatchOperation {
	if len(cfg.Files) == 0 {
		return nil
	}

	b := patch.NewBuilder()

	if volumes.IsIn(pod.Spec.Volumes, cfg.FilesVolumeName) {
		log.Trace("files volume already present", "volume", cfg.FilesVolumeName)
	} else {
		log.Debug("adding files volume", "volume", cfg.FilesVolumeName, "configMap", cfg.FilesConfigMapName)
		patch.AddToList(b, volumesPath, len(pod.Spec.Volumes) > 0, volumes.NewConfigMapVolume(cfg.FilesVolumeName, cfg.FilesConfigMapName))
	}

	for i := range pod.Spec.Containers {
		container := &pod.Spec.Containers[i]
		missing := missingFileMounts(container.VolumeMounts, cfg)

		if len(missing) > 0 {
			log.Debug("adding file mounts", "container", container.Name, "count", len(missing), "createList", len(container.VolumeMounts) == 0)
		}

		patch.AddToList(b, patch.Path(containersPath, patch.Index(i), "volumeMounts"), len(container.VolumeMounts) > 0, missing...)
	}

	return b.Operations()
}

func missingFileMounts(existing []corev1.VolumeMount, cfg config.Config) []corev1.VolumeMount {
	var missing []corev1.VolumeMount

	for _, file := range cfg.Files {
		if mounts.IsPathIn(existing, file.MountPath) || mounts.IsPathIn(missing, file.MountPath) {
			continue
		}

		missing = append(missing, corev1.VolumeMount{
			Name:      cfg.FilesVolumeName,
			MountPath: file.MountPath,
			SubPath:   file.Key,
			ReadOnly:  true,
		})
	}

	return missing
}
