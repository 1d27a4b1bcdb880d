package kube

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// PodTarget identifies the pod and container resolved for a Deployment.
type PodTarget struct {
	Namespace string
	Pod       string
	Container string
}

// CheckDeployment verifies that the named Deployment exists in the
// namespace. Used as a startup preflight.
func (c *Client) CheckDeployment(ctx context.Context, namespace, deployment string) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}
	_, err := c.Clientset.AppsV1().Deployments(namespace).Get(ctx, deployment, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return fmt.Errorf("deployment %s/%s not found", namespace, deployment)
	}
	if err != nil {
		return fmt.Errorf("get deployment %s/%s: %w", namespace, deployment, err)
	}
	return nil
}

// FirstReadyPod resolves the first ready pod backing the Deployment,
// mirroring `kubectl exec deploy/<name>`. Pods being deleted are
// skipped; when no pod is ready the first live pod is returned so the
// remote call can surface the real failure.
func (c *Client) FirstReadyPod(ctx context.Context, namespace, deployment, container string) (*PodTarget, error) {
	if c == nil || c.Clientset == nil {
		return nil, fmt.Errorf("kube client is not initialized")
	}
	dep, err := c.Clientset.AppsV1().Deployments(namespace).Get(ctx, deployment, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, fmt.Errorf("deployment %s/%s not found", namespace, deployment)
		}
		return nil, fmt.Errorf("get deployment %s/%s: %w", namespace, deployment, err)
	}

	selector, err := metav1.LabelSelectorAsSelector(dep.Spec.Selector)
	if err != nil {
		return nil, fmt.Errorf("deployment selector: %w", err)
	}
	pods, err := c.Clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: selector.String()})
	if err != nil {
		return nil, fmt.Errorf("list pods for %s/%s: %w", namespace, deployment, err)
	}
	if len(pods.Items) == 0 {
		return nil, fmt.Errorf("no pods for deployment %s/%s", namespace, deployment)
	}

	pick := ""
	for i := range pods.Items {
		p := &pods.Items[i]
		if p.DeletionTimestamp != nil {
			continue
		}
		if isPodReady(p) {
			pick = p.Name
			break
		}
		if pick == "" {
			pick = p.Name
		}
	}
	if pick == "" {
		pick = pods.Items[0].Name
	}

	if container == "" && len(dep.Spec.Template.Spec.Containers) > 0 {
		container = dep.Spec.Template.Spec.Containers[0].Name
	}
	return &PodTarget{Namespace: namespace, Pod: pick, Container: container}, nil
}

func isPodReady(p *corev1.Pod) bool {
	if p.Status.Phase != corev1.PodRunning {
		return false
	}
	for _, cond := range p.Status.Conditions {
		if cond.Type == corev1.PodReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}
