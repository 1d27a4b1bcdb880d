package kube

import (
	"context"
	"strings"
	"testing"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func testDeployment(ns, name string) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Namespace: ns, Name: name},
		Spec: appsv1.DeploymentSpec{
			Selector: &metav1.LabelSelector{MatchLabels: map[string]string{"app": name}},
			Template: corev1.PodTemplateSpec{
				Spec: corev1.PodSpec{Containers: []corev1.Container{{Name: name}}},
			},
		},
	}
}

func testPod(ns, name, app string, ready bool) *corev1.Pod {
	status := corev1.ConditionFalse
	if ready {
		status = corev1.ConditionTrue
	}
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Namespace: ns, Name: name, Labels: map[string]string{"app": app}},
		Status: corev1.PodStatus{
			Phase:      corev1.PodRunning,
			Conditions: []corev1.PodCondition{{Type: corev1.PodReady, Status: status}},
		},
	}
}

func TestFirstReadyPod(t *testing.T) {
	ctx := context.Background()

	t.Run("prefers_ready_pod", func(t *testing.T) {
		cs := fake.NewSimpleClientset(
			testDeployment("overleaf", "mongo"),
			testPod("overleaf", "mongo-a", "mongo", false),
			testPod("overleaf", "mongo-b", "mongo", true),
		)
		c := &Client{Clientset: cs}
		target, err := c.FirstReadyPod(ctx, "overleaf", "mongo", "")
		if err != nil {
			t.Fatalf("FirstReadyPod: %v", err)
		}
		if target.Pod != "mongo-b" {
			t.Errorf("pod = %s, want mongo-b", target.Pod)
		}
		if target.Container != "mongo" {
			t.Errorf("container = %s, want mongo (deployment's first container)", target.Container)
		}
	})

	t.Run("falls_back_to_unready_pod", func(t *testing.T) {
		cs := fake.NewSimpleClientset(
			testDeployment("overleaf", "mongo"),
			testPod("overleaf", "mongo-a", "mongo", false),
		)
		c := &Client{Clientset: cs}
		target, err := c.FirstReadyPod(ctx, "overleaf", "mongo", "")
		if err != nil {
			t.Fatalf("FirstReadyPod: %v", err)
		}
		if target.Pod != "mongo-a" {
			t.Errorf("pod = %s, want mongo-a", target.Pod)
		}
	})

	t.Run("explicit_container_wins", func(t *testing.T) {
		cs := fake.NewSimpleClientset(
			testDeployment("overleaf", "mongo"),
			testPod("overleaf", "mongo-a", "mongo", true),
		)
		c := &Client{Clientset: cs}
		target, err := c.FirstReadyPod(ctx, "overleaf", "mongo", "sidecar")
		if err != nil {
			t.Fatalf("FirstReadyPod: %v", err)
		}
		if target.Container != "sidecar" {
			t.Errorf("container = %s, want sidecar", target.Container)
		}
	})

	t.Run("missing_deployment", func(t *testing.T) {
		c := &Client{Clientset: fake.NewSimpleClientset()}
		_, err := c.FirstReadyPod(ctx, "overleaf", "mongo", "")
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("err = %v, want not found", err)
		}
	})

	t.Run("no_pods", func(t *testing.T) {
		c := &Client{Clientset: fake.NewSimpleClientset(testDeployment("overleaf", "mongo"))}
		_, err := c.FirstReadyPod(ctx, "overleaf", "mongo", "")
		if err == nil || !strings.Contains(err.Error(), "no pods") {
			t.Errorf("err = %v, want no pods", err)
		}
	})
}

func TestCheckDeployment(t *testing.T) {
	ctx := context.Background()
	c := &Client{Clientset: fake.NewSimpleClientset(testDeployment("overleaf", "sharelatex"))}
	if err := c.CheckDeployment(ctx, "overleaf", "sharelatex"); err != nil {
		t.Errorf("CheckDeployment: %v", err)
	}
	if err := c.CheckDeployment(ctx, "overleaf", "absent"); err == nil {
		t.Error("expected error for missing deployment")
	}
}
